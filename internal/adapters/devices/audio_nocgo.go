//go:build !cgo

package devices

import (
	"context"

	"github.com/dkeye/videoapi/internal/core"
)

// Audio needs cgo; without it every query fails.
type Audio struct{}

func (Audio) EnumerateDevices(context.Context) ([]core.DeviceInfo, error) {
	return nil, ErrAudioUnavailable
}
