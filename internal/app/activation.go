package app

import (
	"errors"

	"github.com/alzaabi555/rased/internal/activation"
	"github.com/alzaabi555/rased/internal/prefs"
)

// ErrInvalidCode is returned by Activate when the code was not issued for
// this device.
var ErrInvalidCode = errors.New("activation code does not match this device")

// Activation returns the stored preferences, assigning a device id on first
// use so there is always an id to quote when requesting a code.
func Activation(prefsPath string) (prefs.Prefs, error) {
	return ensureDevice(prefsPath)
}

// Activate verifies code against the device id and records the result.
func Activate(prefsPath, code string) (prefs.Prefs, error) {
	p, err := ensureDevice(prefsPath)
	if err != nil {
		return p, err
	}
	if !activation.Verify(p.DeviceID, code) {
		return p, ErrInvalidCode
	}
	return prefs.Update(prefsPath, func(p *prefs.Prefs) { p.Activated = true })
}

// ensureDevice assigns a device id on first launch.
func ensureDevice(path string) (prefs.Prefs, error) {
	p, _ := prefs.Load(path)
	if p.DeviceID != "" {
		return p, nil
	}
	return prefs.Update(path, func(p *prefs.Prefs) {
		p.DeviceID = activation.NewDeviceID()
	})
}
