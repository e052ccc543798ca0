// Package testutils provides helpers shared by the package tests.
//
// The helpers cover:
//  1. Test HTTP servers with automatic cleanup
//  2. Executing JSON requests against them
//  3. Asserting the shared error response format
//  4. Temporary configuration files
//
// The grader subpackage provides a fake grading service.
//
// # HTTP Helpers
//
//	server := testutils.CreateTestServer(t, handler)
//	resp := testutils.ExecuteJSONRequest(t, server, http.MethodPost, "/api/drill/answer", `{"value":"cat"}`)
//	testutils.AssertErrorResponse(t, resp, http.StatusConflict, "not waiting")
package testutils
