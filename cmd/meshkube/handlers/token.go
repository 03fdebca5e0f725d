package handlers

import (
	"context"
	"fmt"

	"github.com/bernhq/meshkube/internal/cluster"
	"github.com/bernhq/meshkube/internal/share"
)

// Token mints a fresh join token, saves it locally, and publishes it to the
// share when one is configured. Every invocation produces a new token; the
// previous file is overwritten.
func Token(_ context.Context, opts Options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	log := newLogger(opts.Verbose)

	token := cluster.GenerateToken()
	path, err := cluster.SaveToken(".", token)
	if err != nil {
		return err
	}

	publisher := share.Publisher{Dir: cfg.SharedDir}
	if publisher.Enabled() {
		if !publisher.Reachable() {
			log.Warnf("share directory %s is not reachable, skipping token publish", publisher.Dir)
		} else if dst, err := publisher.Publish(path, cluster.TokenFilename); err != nil {
			log.Warnf("could not publish token to share: %v", err)
		} else {
			log.Infof("token published to %s", dst)
		}
	}

	fmt.Printf("Join token: %s\nSaved to: %s\n", token, path)
	return nil
}
