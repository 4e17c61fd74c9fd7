package httpx

// CurrentPage identifiers reported in every view model's layout.
const (
	PageHome      = "home"
	PagePost      = "post"
	PagePostForm  = "post-form"
	PageLogin     = "login"
	PageRegister  = "register"
	PageDashboard = "dashboard"
	PageProfile   = "profile"
	PageAdmin     = "admin"
)

// Paths of guarded pages that handlers redirect to.
const (
	PathDashboard = "/dashboard"
	PathAdmin     = "/admin"
	PathProfile   = "/profile"
)

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	// FormModeEdit indicates the form is in edit mode.
	FormModeEdit FormMode = "edit"
	// FormModeCreate indicates the form is in create mode.
	FormModeCreate FormMode = "create"
)
