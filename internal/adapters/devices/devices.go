// Package devices provides core.DeviceEnumerator implementations: a fixed
// list from configuration, the host audio stack, and a combinator that
// merges several sources.
package devices

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/videoapi/internal/core"
)

var ErrAudioUnavailable = errors.New("devices: audio backend unavailable in this build")

// Static always reports the same devices.
type Static []core.DeviceInfo

func (s Static) EnumerateDevices(ctx context.Context) ([]core.DeviceInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s), nil
}

// Combined queries each source in order and concatenates the results.
// A failing source is skipped; the call fails only when every source does.
type Combined []core.DeviceEnumerator

func Combine(sources ...core.DeviceEnumerator) Combined {
	out := make(Combined, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (c Combined) EnumerateDevices(ctx context.Context) ([]core.DeviceInfo, error) {
	var (
		all  []core.DeviceInfo
		errs []error
	)
	for i, src := range c {
		list, err := src.EnumerateDevices(ctx)
		if err != nil {
			log.Warn().Err(err).Str("module", "adapters.devices").Int("source", i).Msg("device source failed")
			errs = append(errs, err)
			continue
		}
		all = append(all, list...)
	}
	if len(c) > 0 && len(errs) == len(c) {
		return nil, fmt.Errorf("devices: all sources failed: %w", errors.Join(errs...))
	}
	if all == nil {
		all = []core.DeviceInfo{}
	}
	return all, nil
}
