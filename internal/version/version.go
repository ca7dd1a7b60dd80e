package version

import "go.uber.org/zap"

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X worktrack/internal/version.Commit=$(git rev-parse --short HEAD)"
var (
	Version   = "1.0.0"
	Commit    = ""
	BuildTime = ""
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
}

func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}
}

// Fields renders the build info as log fields.
func (i Info) Fields() []zap.Field {
	fields := []zap.Field{zap.String("version", i.Version)}
	if i.Commit != "" {
		fields = append(fields, zap.String("commit", i.Commit))
	}
	if i.BuildTime != "" {
		fields = append(fields, zap.String("build_time", i.BuildTime))
	}
	return fields
}
