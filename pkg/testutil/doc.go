// Package testutil provides helpers shared by implx tests: fragment trees on
// disk or in memory, and small builders for implementor sets.
//
// Helpers take *testing.T and fail the test on setup errors, so test bodies
// only deal with the behaviour under test.
package testutil
