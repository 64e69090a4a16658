package prompt

import (
	"context"
	"fmt"

	"github.com/dmorgan81/wastebot/internal/log"
	"github.com/dmorgan81/wastebot/internal/store"
	"github.com/samber/do"
)

type Loader struct {
	downloader store.Downloader
}

func NewLoader(i *do.Injector) (*Loader, error) {
	return &Loader{downloader: do.MustInvoke[store.Downloader](i)}, nil
}

// Load returns the built-in profile called name, or the YAML document at
// source when source is set.
func (l *Loader) Load(ctx context.Context, name, source string) (Profile, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("prompt")
	if source == "" {
		log.Info("using built-in profile", "profile", name)
		return Builtin(name)
	}

	log.Info("loading profile", "source", source)
	data, err := l.downloader.Download(ctx, source)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile %s: %w", source, err)
	}
	p, err := Parse(data)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile %s: %w", source, err)
	}
	return p, nil
}
