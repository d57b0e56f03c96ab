package domain

const unknownDescription = "Unknown"

// ArchiveSettings holds archive assembly and output configuration.
type ArchiveSettings struct {
	// Collision decides how duplicate entry names are handled.
	Collision CollisionPolicy

	// OutputDir is where finished archives are written.
	// Empty means the current working directory.
	OutputDir string
}

// TransportSettings holds HTTP transport configuration.
type TransportSettings struct {
	// UserAgent is sent with every request.
	UserAgent string

	// Cookie is sent as the Cookie header when set. Order pages and
	// downloadable links usually require a logged-in session.
	Cookie string

	// RequestsPerSecond throttles request starts. Zero disables throttling.
	RequestsPerSecond int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Batch holds fetch scheduling settings.
	Batch BatchPolicy

	// Archive holds archive settings.
	Archive ArchiveSettings

	// Transport holds HTTP settings.
	Transport TransportSettings
}

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "orderpack"

// DefaultAppSettings returns settings with sensible defaults.
// Batch scheduling defaults to unthrottled with a batch size of 5 and a
// three second pause, used only once rate limiting is switched on.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Batch: DefaultBatchPolicy(),
		Archive: ArchiveSettings{
			Collision: CollisionOverwrite,
			OutputDir: "",
		},
		Transport: TransportSettings{
			UserAgent:         DefaultUserAgent,
			Cookie:            "",
			RequestsPerSecond: 0,
		},
	}
}

// Normalize clamps numeric settings and replaces unknown enum values.
func (s AppSettings) Normalize() AppSettings {
	s.Batch = s.Batch.Normalize()
	if !s.Archive.Collision.IsValid() {
		s.Archive.Collision = CollisionOverwrite
	}
	if s.Transport.RequestsPerSecond < 0 {
		s.Transport.RequestsPerSecond = 0
	}
	if s.Transport.UserAgent == "" {
		s.Transport.UserAgent = DefaultUserAgent
	}
	return s
}
