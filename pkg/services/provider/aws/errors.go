package aws

import (
	"platform-cli/pkg/services/provider"
	"slices"

	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
)

// errorCode returns the AWS error code carried by err, or "" when err did not
// come from an AWS API.
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// accessDeniedCodes are skipped by every tag lookup.
var accessDeniedCodes = map[string]bool{
	"AccessDenied":          true,
	"AccessDeniedException": true,
}

// classifyTagError converts a routine tag lookup failure into a fetch outcome.
// Only access denials and the given notFound codes are routine; anything else,
// including a resource that has disappeared, is returned as an error.
func classifyTagError(err error, what string, notFound ...string) (provider.FetchOutcome, error) {
	code := errorCode(err)
	if accessDeniedCodes[code] {
		return provider.AccessDenied(), nil
	}
	if code != "" && slices.Contains(notFound, code) {
		return provider.NotFound(), nil
	}
	return provider.FetchOutcome{}, errors.Wrap(err, "Failed to read tags of "+what)
}
