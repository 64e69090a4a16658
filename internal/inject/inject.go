package inject

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/dmorgan81/wastebot/internal/config"
	"github.com/dmorgan81/wastebot/internal/gemini"
	"github.com/dmorgan81/wastebot/internal/handler"
	"github.com/dmorgan81/wastebot/internal/log"
	"github.com/dmorgan81/wastebot/internal/param"
	"github.com/dmorgan81/wastebot/internal/prompt"
	"github.com/dmorgan81/wastebot/internal/relay"
	"github.com/dmorgan81/wastebot/internal/store"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func Setup(ctx context.Context, cfg config.Config) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		},
	})
	do.ProvideValue[config.Config](injector, cfg)
	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return awsconfig.LoadDefaultConfig(ctx)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*s3.Client](injector, func(i *do.Injector) (*s3.Client, error) {
		return s3.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.ProvideValue[*http.Client](injector, http.DefaultClient)

	do.Provide[param.Fetcher](injector, param.NewParameterStoreFetcher)
	do.Provide[store.Downloader](injector, store.NewDownloader)
	do.Provide[*prompt.Loader](injector, prompt.NewLoader)
	do.Provide[gemini.Generator](injector, gemini.NewClient)

	do.Provide[prompt.Profile](injector, func(i *do.Injector) (prompt.Profile, error) {
		return do.MustInvoke[*prompt.Loader](i).Load(ctx, cfg.Profile, cfg.ProfileSource)
	})
	do.ProvideNamed[string](injector, "gemini_key", func(i *do.Injector) (string, error) {
		if cfg.APIKey != "" || cfg.APIKeyParam == "" {
			return cfg.APIKey, nil
		}
		return param.ResolveKey(ctx, do.MustInvoke[param.Fetcher](i), cfg.APIKey, cfg.APIKeyParam), nil
	})
	do.ProvideNamedValue[string](injector, "gemini_endpoint", cfg.Endpoint)

	do.Provide[*relay.Relay](injector, relay.NewRelay)
	do.Provide[*handler.Handler](injector, handler.NewHandler)

	return injector
}

// Warm resolves the credential and the prompt profile concurrently, then builds
// the handler. A profile that cannot be loaded is returned as an error.
func Warm(ctx context.Context, injector *do.Injector) (*handler.Handler, error) {
	var group errgroup.Group
	group.Go(func() error {
		key, err := do.InvokeNamed[string](injector, "gemini_key")
		if err == nil && key == "" {
			log.FromContextOrDiscard(ctx).Warn("no api key configured, requests will be rejected")
		}
		return err
	})
	group.Go(func() error {
		_, err := do.Invoke[prompt.Profile](injector)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return do.Invoke[*handler.Handler](injector)
}
