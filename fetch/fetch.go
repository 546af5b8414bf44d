// Package fetch downloads remote archives by shelling out to aria2c.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/openvqa/vizprep/manifest"
	"github.com/openvqa/vizprep/runner"
)

// DefaultWidth bounds the number of concurrent downloads.
const DefaultWidth = 4

// Client fetches archives into Dir.
type Client struct {
	// Dir is the download destination.
	Dir string

	// Width bounds concurrent downloads; 0 means DefaultWidth.
	Width int

	// Run invokes the download tool; nil means runner.Passthrough.
	Run runner.Func

	// Log receives progress; nil means slog.Default().
	Log *slog.Logger
}

func (c *Client) width() int {
	if c.Width > 0 {
		return c.Width
	}
	return DefaultWidth
}

func (c *Client) run() runner.Func {
	if c.Run != nil {
		return c.Run
	}
	return runner.Passthrough
}

func (c *Client) log() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.Default()
}

// Fetch downloads the given archive URLs, skipping any whose target file
// already exists in Dir. Downloads run concurrently up to Width; each
// item is independent, so one failure never cancels its siblings.
//
// The returned paths are the archives present after the run, existing
// and freshly downloaded alike, sorted. The returned error joins the
// per-item failures; callers typically log it and work with whatever
// arrived.
func (c *Client) Fetch(ctx context.Context, urls []string) ([]string, error) {
	log := c.log()
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create %q: %w", c.Dir, err)
	}

	type item struct {
		url, name, path string
	}
	var (
		have    []string
		pending []item
	)
	for _, u := range urls {
		name, err := manifest.FileName(u)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(c.Dir, name)
		if _, err := os.Stat(path); err == nil {
			log.Info("already downloaded, skipping", "file", name)
			have = append(have, path)
			continue
		}
		pending = append(pending, item{url: u, name: name, path: path})
	}
	if len(pending) == 0 {
		log.Info("all archives already downloaded")
		sort.Strings(have)
		return have, nil
	}

	log.Info("downloading archives", "count", len(pending), "width", c.width())
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(c.width())
	run := c.run()
	for _, it := range pending {
		g.Go(func() error {
			log.Info("downloading", "file", it.name)
			err := run(ctx, "aria2c",
				"-x", "16",
				"-s", "16",
				"-d", c.Dir,
				"-o", it.name,
				it.url)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("download %s: %w", it.name, err))
				return nil
			}
			log.Info("downloaded", "file", it.name)
			have = append(have, it.path)
			return nil
		})
	}
	g.Wait()
	sort.Strings(have)
	return have, errors.Join(errs...)
}
