package devices

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dkeye/videoapi/internal/core"
	"github.com/dkeye/videoapi/internal/core/mocks"
)

var cams = Static{
	{DeviceID: "cam0", Kind: core.DeviceVideoInput, Label: "Front"},
	{DeviceID: "cam1", Kind: core.DeviceVideoInput, Label: "Back"},
}

func TestStatic_ReturnsCopy(t *testing.T) {
	list, err := cams.EnumerateDevices(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	list[0].Label = "changed"
	assert.Equal(t, "Front", cams[0].Label)
}

func TestStatic_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cams.EnumerateDevices(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCombined_SkipsFailingSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	broken := mocks.NewMockDeviceEnumerator(ctrl)
	broken.EXPECT().EnumerateDevices(gomock.Any()).Return(nil, errors.New("busy"))

	list, err := Combine(broken, nil, cams).EnumerateDevices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.DeviceInfo(cams), list)
}

func TestCombined_AllFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := mocks.NewMockDeviceEnumerator(ctrl)
	b := mocks.NewMockDeviceEnumerator(ctrl)
	errA := errors.New("a")
	a.EXPECT().EnumerateDevices(gomock.Any()).Return(nil, errA)
	b.EXPECT().EnumerateDevices(gomock.Any()).Return(nil, errors.New("b"))

	_, err := Combine(a, b).EnumerateDevices(context.Background())
	assert.ErrorIs(t, err, errA)
}

func TestCombined_EmptyIsNotNil(t *testing.T) {
	list, err := Combine().EnumerateDevices(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
