package errors

import (
	"regexp"
	"strings"
)

// TerraformError is a failed terraform command with its raw output classified into a Tag.
type TerraformError struct {
	Tag       Tag
	Command   string
	RawOutput string
	cause     error
}

func (e *TerraformError) Error() string {
	msg := "terraform " + e.Command + " failed"
	if e.Tag != TagTerraformUnknownError {
		msg += " (" + e.Tag.String() + ")"
	}
	return msg
}

func (e *TerraformError) Unwrap() error { return e.cause }

type terraformPattern struct {
	re  *regexp.Regexp
	tag Tag
}

var terraformPatterns = []terraformPattern{
	{regexp.MustCompile(`(?i)error acquiring the state lock`), TagTerraformStateLocked},
	{regexp.MustCompile(`(?i)(LimitExceeded|QuotaExceeded|quota exceeded|quotas reached|VcpuLimitExceeded)`), TagTerraformCloudProviderQuotasReached},
	{regexp.MustCompile(`(?i)(InvalidClientTokenId|SignatureDoesNotMatch|invalid credentials|AuthFailure|401 Unauthorized)`), TagTerraformInvalidCredentials},
	{regexp.MustCompile(`(?i)(AccessDenied|UnauthorizedOperation|not authorized to perform|403 Forbidden)`), TagTerraformNotEnoughPermissions},
	{regexp.MustCompile(`(?i)(AlreadyExists|already exists|DBInstanceAlreadyExists)`), TagTerraformAlreadyExistingResource},
	{regexp.MustCompile(`(?i)(timeout while waiting for state|timeout while waiting for resource)`), TagTerraformWaitingTimeoutResource},
	{regexp.MustCompile(`(?i)(Unsupported Kubernetes minor version update|cannot upgrade cluster version)`), TagTerraformClusterUnsupportedVersionUpdate},
	{regexp.MustCompile(`(?i)(InvalidParameterCombination: Invalid storage size|storage size can't be reduced|cannot be reduced)`), TagTerraformInstanceVolumeCannotBeReduced},
	{regexp.MustCompile(`(?i)OptInRequired`), TagTerraformServiceNotActivatedOptInRequired},
	{regexp.MustCompile(`(?i)DependencyViolation`), TagTerraformResourceDependencyViolation},
}

// ClassifyTerraformOutput maps raw terraform output to the most specific Tag it matches.
func ClassifyTerraformOutput(raw string) Tag {
	if strings.TrimSpace(raw) == "" {
		return TagTerraformUnknownError
	}
	for _, p := range terraformPatterns {
		if p.re.MatchString(raw) {
			return p.tag
		}
	}
	return TagTerraformUnknownError
}

// NewTerraformError classifies the output of a failed terraform command.
func NewTerraformError(command, rawOutput string, cause error) *TerraformError {
	raw := rawOutput
	if raw == "" && cause != nil {
		raw = cause.Error()
	}
	return &TerraformError{
		Tag:       ClassifyTerraformOutput(raw),
		Command:   command,
		RawOutput: raw,
		cause:     cause,
	}
}
