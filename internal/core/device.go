package core

import "context"

type DeviceKind string

const (
	DeviceVideoInput  DeviceKind = "videoinput"
	DeviceAudioInput  DeviceKind = "audioinput"
	DeviceAudioOutput DeviceKind = "audiooutput"
)

// DeviceInfo describes a media device, like a browser MediaDeviceInfo.
type DeviceInfo struct {
	DeviceID string     `json:"deviceId"`
	GroupID  string     `json:"groupId,omitempty"`
	Kind     DeviceKind `json:"kind"`
	Label    string     `json:"label"`
}

// DeviceEnumerator lists the hardware available to the engine.
type DeviceEnumerator interface {
	EnumerateDevices(ctx context.Context) ([]DeviceInfo, error)
}
