// Package paths resolves the directories implx reads configuration from and
// writes its log file to. It follows the XDG Base Directory specification,
// with IMPLX_* environment variables taking precedence.
package paths
