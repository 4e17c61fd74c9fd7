// Package mocks provides mock implementations of the blog API ports for testing content services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockBlogAPI(ctrl)
//	api.EXPECT().GetPost(gomock.Any(), "p-1").Return(post, nil)
package mocks

// Generate mock for BlogAPI interface from internal/ports package.
// This creates MockBlogAPI with methods for every posts, comments and users endpoint.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=blog_api_mock.go github.com/favoriteblog/blog-ui/internal/ports BlogAPI

// Generate mock for SessionReader interface from internal/ports package.
// This creates MockSessionReader with methods: Session
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_reader_mock.go github.com/favoriteblog/blog-ui/internal/ports SessionReader
