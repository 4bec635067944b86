package model

const (
	// ServerWis selects the wis inspection service.
	ServerWis = "wis"
	// ServerOneGuard selects the oneguard inspection service.
	ServerOneGuard = "oneguard"

	// EnvironmentTest selects the providers' test endpoints.
	EnvironmentTest = "test"
	// EnvironmentProduction selects the providers' production endpoints.
	EnvironmentProduction = "production"
)

// StatusRequest is one status inquiry: the provider request id and the
// folder, relative to the report folder, that receives its PDF.
type StatusRequest struct {
	RequestID  string `yaml:"id" validate:"required,number"`
	FolderPath string `yaml:"folder" validate:"required"`
}

// RunOptions is the validated configuration for a single batch run.
type RunOptions struct {
	Server       string          `validate:"required,oneof=wis oneguard"`
	Environment  string          `validate:"required,oneof=test production"`
	Username     string          `validate:"required"`
	Password     string          `validate:"required"`
	URL          string          `validate:"required,url"`
	ReportFolder string          `validate:"required,abspath"`
	Requests     []StatusRequest `validate:"required,min=1,dive"`
}
