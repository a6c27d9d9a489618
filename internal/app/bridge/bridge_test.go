package bridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dkeye/videoapi/internal/core"
	"github.com/dkeye/videoapi/internal/core/mocks"
	"github.com/dkeye/videoapi/internal/events"
)

type fixedSource struct {
	sess core.Session
}

func (s fixedSource) ActiveSession() (core.Session, bool) {
	return s.sess, s.sess != nil
}

func TestBridge_NoSessionIsNoop(t *testing.T) {
	bus := events.NewBus()
	sub := bus.Subscribe(4)
	defer bus.Unsubscribe(sub)

	b := New(fixedSource{}, bus)
	assert.NotPanics(t, func() {
		b.GetDevicesList()
		b.ToggleAudio()
		b.ToggleVideo()
		b.ToggleRaiseHand()
		b.ToggleTileView()
	})
	require.NoError(t, b.Dispatch("vToggleAudio"))

	select {
	case e := <-sub.C:
		t.Fatalf("unexpected event %s", e.Kind)
	default:
	}
}

func TestBridge_VerbsReachSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := mocks.NewMockSession(ctrl)
	sess.EXPECT().ID().Return(core.SessionID("s1")).AnyTimes()

	gomock.InOrder(
		sess.EXPECT().Dispatch(core.CmdGetDevicesList).Return(nil),
		sess.EXPECT().Dispatch(core.CmdToggleAudio).Return(nil),
		sess.EXPECT().Dispatch(core.CmdToggleVideo).Return(nil),
		sess.EXPECT().Dispatch(core.CmdToggleRaiseHand).Return(nil),
		sess.EXPECT().Dispatch(core.CmdToggleTileView).Return(nil),
	)

	b := New(fixedSource{sess: sess}, events.NewBus())
	b.GetDevicesList()
	b.ToggleAudio()
	b.ToggleVideo()
	b.ToggleRaiseHand()
	b.ToggleTileView()
}

func TestBridge_DispatchByName(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := mocks.NewMockSession(ctrl)
	sess.EXPECT().ID().Return(core.SessionID("s1")).AnyTimes()
	sess.EXPECT().Dispatch(core.CmdToggleTileView).Return(nil)

	b := New(fixedSource{sess: sess}, events.NewBus())
	require.NoError(t, b.Dispatch("vToggleTileView"))
	assert.ErrorIs(t, b.Dispatch("vHangUp"), ErrUnknownCommand)
}

func TestBridge_DispatchFailurePublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := mocks.NewMockSession(ctrl)
	sess.EXPECT().ID().Return(core.SessionID("s1")).AnyTimes()
	sess.EXPECT().Dispatch(core.CmdToggleAudio).Return(core.ErrQueueFull)

	bus := events.NewBus()
	sub := bus.Subscribe(4)
	defer bus.Unsubscribe(sub)

	b := New(fixedSource{sess: sess}, bus)
	b.ToggleAudio()

	select {
	case e := <-sub.C:
		assert.Equal(t, events.CommandDispatchFail, e.Kind)
		assert.Equal(t, core.SessionID("s1"), e.SessionID)
		assert.ErrorIs(t, e.Err, core.ErrQueueFull)
	case <-time.After(time.Second):
		t.Fatal("no failure event")
	}
}
