//go:build cgo

package devices

import (
	"context"
	"fmt"

	"github.com/gen2brain/malgo"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/videoapi/internal/core"
)

// Audio lists capture and playback devices through miniaudio.
type Audio struct{}

func (Audio) EnumerateDevices(ctx context.Context) ([]core.DeviceInfo, error) {
	type result struct {
		list []core.DeviceInfo
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		list, err := listAudio()
		ch <- result{list, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		return r.list, r.err
	}
}

func listAudio() ([]core.DeviceInfo, error) {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		log.Debug().Str("module", "adapters.devices").Msg(message)
	})
	if err != nil {
		return nil, fmt.Errorf("malgo init: %w", err)
	}
	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()

	var out []core.DeviceInfo
	var failed int
	for _, k := range []struct {
		typ  malgo.DeviceType
		kind core.DeviceKind
	}{
		{malgo.Capture, core.DeviceAudioInput},
		{malgo.Playback, core.DeviceAudioOutput},
	} {
		infos, err := mctx.Devices(k.typ)
		if err != nil {
			log.Warn().Err(err).Str("module", "adapters.devices").Str("kind", string(k.kind)).Msg("audio device query failed")
			failed++
			continue
		}
		for i := range infos {
			info := &infos[i]
			out = append(out, core.DeviceInfo{
				DeviceID: info.ID.String(),
				Kind:     k.kind,
				Label:    info.Name(),
			})
		}
	}
	if failed == 2 {
		return nil, fmt.Errorf("malgo: no audio devices could be queried")
	}
	return out, nil
}
