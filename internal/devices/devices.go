// Package devices turns libinput list-devices output into records and
// offers filtering, tabular rendering and hotplug-triggered rescans.
package devices

import (
	"context"
	"strings"

	"inputctl/internal/libinput"
)

// Device is one block of list-devices output.
type Device struct {
	Name         string            `json:"name"`
	Kernel       string            `json:"kernel,omitempty"`
	Capabilities string            `json:"capabilities,omitempty"`
	Fields       map[string]string `json:"fields,omitempty"`
	// Order keeps the keys of Fields as printed.
	Order []string `json:"-"`
}

// Parser accumulates list-devices lines into Devices. Feed it with Add
// (usable directly as a libinput.Consumer) and call Devices at the end.
type Parser struct {
	devs []Device
	cur  *Device
}

// Add consumes one output line.
func (p *Parser) Add(line string) error {
	if strings.TrimSpace(line) == "" {
		p.flush()
		return nil
	}
	key, val, ok := strings.Cut(line, ":")
	if !ok {
		return nil
	}
	key = strings.TrimSpace(key)
	val = strings.TrimSpace(val)
	if key == "Device" {
		p.flush()
		p.cur = &Device{Name: val, Fields: map[string]string{}}
		return nil
	}
	if p.cur == nil {
		return nil
	}
	switch key {
	case "Kernel":
		p.cur.Kernel = val
	case "Capabilities":
		p.cur.Capabilities = val
	}
	if _, seen := p.cur.Fields[key]; !seen {
		p.cur.Order = append(p.cur.Order, key)
	}
	p.cur.Fields[key] = val
	return nil
}

func (p *Parser) flush() {
	if p.cur != nil {
		p.devs = append(p.devs, *p.cur)
		p.cur = nil
	}
}

// Devices returns everything parsed so far, including a trailing block.
func (p *Parser) Devices() []Device {
	p.flush()
	return p.devs
}

// List runs list-devices through r and parses the result.
func List(ctx context.Context, r *libinput.Resolver) ([]Device, error) {
	var p Parser
	if err := r.StreamListDevices(ctx, p.Add); err != nil {
		return nil, err
	}
	return p.Devices(), nil
}
