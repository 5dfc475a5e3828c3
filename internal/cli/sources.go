package cli

import (
	"github.com/ariel-frischer/whatsnew/internal/changelog"
	"github.com/ariel-frischer/whatsnew/internal/config"
)

// changelogSources picks the primary changelog source and an optional fallback.
// Explicit flags win over configuration. The embedded changelog only stands in
// for the default remote URL, since it is whatsnew's own changelog.
func changelogSources(cfg *config.Configuration, fileFlag, urlFlag string) (changelog.Source, changelog.Source) {
	switch {
	case fileFlag != "":
		return changelog.FileSource{Path: fileFlag}, nil
	case urlFlag != "":
		return changelog.NewHTTPSource(urlFlag, cfg.Timeout), nil
	case cfg.ChangelogFile != "":
		return changelog.FileSource{Path: cfg.ChangelogFile}, nil
	}

	primary := changelog.NewHTTPSource(cfg.ChangelogURL, cfg.Timeout)
	if cfg.ChangelogURL == config.DefaultChangelogURL {
		return primary, changelog.EmbeddedSource{}
	}
	return primary, nil
}
