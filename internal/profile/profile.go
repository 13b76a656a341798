// Package profile implements the persisted configuration model of the
// remapper: the hierarchy of profiles, devices, modes, input items and
// action bindings, its XML codec, and the reconciliation of a loaded profile
// against the live device set.
package profile

import (
	"fmt"
	"slices"
	"sort"

	"github.com/jmriego/gremlin/internal/action"
)

// GlobalMode is the mode every device always carries. It is created
// automatically and cannot be removed.
const GlobalMode = "global"

// Profile is the root aggregate of a configuration: all devices with their
// modes and bindings, the imported plugin files, and the per-instance
// plugin variable values.
type Profile struct {
	devices     map[int64]*Device
	deviceOrder []int64

	// Imports lists plugin files to load, in load order, deduplicated.
	Imports []string

	// Modules carries the persisted plugin instances and their variable
	// values, in document order.
	Modules []*Module
}

// New creates an empty profile.
func New() *Profile {
	return &Profile{devices: make(map[int64]*Device)}
}

// Device returns the device stored under the given hardware id.
func (p *Profile) Device(hardwareID int64) (*Device, bool) {
	d, ok := p.devices[hardwareID]
	return d, ok
}

// Devices returns all devices in insertion order.
func (p *Profile) Devices() []*Device {
	out := make([]*Device, 0, len(p.deviceOrder))
	for _, id := range p.deviceOrder {
		out = append(out, p.devices[id])
	}
	return out
}

// AddDevice stores a device under its hardware id. Adding a device whose
// hardware id is already present replaces the stored device in place.
func (p *Profile) AddDevice(d *Device) {
	if _, ok := p.devices[d.HardwareID]; !ok {
		p.deviceOrder = append(p.deviceOrder, d.HardwareID)
	}
	p.devices[d.HardwareID] = d
}

// RemoveDevice drops the device stored under the given hardware id.
func (p *Profile) RemoveDevice(hardwareID int64) {
	if _, ok := p.devices[hardwareID]; !ok {
		return
	}
	delete(p.devices, hardwareID)
	p.deviceOrder = slices.DeleteFunc(p.deviceOrder, func(id int64) bool {
		return id == hardwareID
	})
}

// GetDeviceModes returns the device stored under hardwareID, creating it
// on first access. A created device is typed as a keyboard iff deviceName
// is "keyboard", and starts with only the empty global mode. The call is
// idempotent: repeated lookups return the same device untouched.
func (p *Profile) GetDeviceModes(hardwareID int64, deviceName string) *Device {
	if d, ok := p.devices[hardwareID]; ok {
		return d
	}
	typ := JoystickDevice
	if deviceName == "keyboard" {
		typ = KeyboardDevice
	}
	d := NewDevice(deviceName, hardwareID, 0, typ)
	p.AddDevice(d)
	return d
}

// ModeNames returns the sorted union of mode names across all devices.
func (p *Profile) ModeNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, id := range p.deviceOrder {
		for _, m := range p.devices[id].Modes() {
			if !seen[m.Name] {
				seen[m.Name] = true
				names = append(names, m.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// AddImport appends a plugin file path unless it is already listed.
func (p *Profile) AddImport(path string) {
	if !slices.Contains(p.Imports, path) {
		p.Imports = append(p.Imports, path)
	}
}

// Device is one physical or virtual input device and its modes.
type Device struct {
	Name       string
	HardwareID int64
	WindowsID  int64
	Type       DeviceType

	modes     map[string]*Mode
	modeOrder []string
}

// NewDevice creates a device with the mandatory empty global mode.
func NewDevice(name string, hardwareID, windowsID int64, typ DeviceType) *Device {
	d := &Device{
		Name:       name,
		HardwareID: hardwareID,
		WindowsID:  windowsID,
		Type:       typ,
		modes:      make(map[string]*Mode),
	}
	d.setMode(NewMode(GlobalMode))
	return d
}

// Mode returns the mode with the given name.
func (d *Device) Mode(name string) (*Mode, bool) {
	m, ok := d.modes[name]
	return m, ok
}

// Modes returns all modes in insertion order.
func (d *Device) Modes() []*Mode {
	out := make([]*Mode, 0, len(d.modeOrder))
	for _, name := range d.modeOrder {
		out = append(out, d.modes[name])
	}
	return out
}

// EnsureMode returns the mode with the given name, creating an empty one
// if it does not exist yet.
func (d *Device) EnsureMode(name string) *Mode {
	if m, ok := d.modes[name]; ok {
		return m
	}
	m := NewMode(name)
	d.setMode(m)
	return m
}

// RemoveMode drops a mode. The global mode cannot be removed.
func (d *Device) RemoveMode(name string) error {
	if name == GlobalMode {
		return fmt.Errorf("mode %q cannot be removed", GlobalMode)
	}
	if _, ok := d.modes[name]; !ok {
		return nil
	}
	delete(d.modes, name)
	d.modeOrder = slices.DeleteFunc(d.modeOrder, func(n string) bool {
		return n == name
	})
	return nil
}

// setMode stores a mode, replacing an existing one of the same name while
// keeping its position in the mode order.
func (d *Device) setMode(m *Mode) {
	if _, ok := d.modes[m.Name]; !ok {
		d.modeOrder = append(d.modeOrder, m.Name)
	}
	d.modes[m.Name] = m
}

// Mode is one named configuration context of a device. Its input items are
// partitioned by input type, each partition keeping insertion order.
type Mode struct {
	Name string

	config map[InputType]map[InputID]*InputItem
	order  map[InputType][]InputID
}

// NewMode creates an empty mode. Every input type partition exists from
// the start, mapping to an empty collection.
func NewMode(name string) *Mode {
	m := &Mode{
		Name:   name,
		config: make(map[InputType]map[InputID]*InputItem),
		order:  make(map[InputType][]InputID),
	}
	for _, t := range inputTypes {
		m.config[t] = make(map[InputID]*InputItem)
	}
	return m
}

// mustValidType panics when t is outside the known input type domain.
// Passing an invalid type is a programming error, not a runtime condition.
func (m *Mode) mustValidType(t InputType) {
	if _, ok := m.config[t]; !ok {
		panic(fmt.Sprintf("profile: invalid input type %d", int(t)))
	}
}

// GetData returns the input item for the given slot, creating an empty one
// on first access. Two consecutive calls for the same slot return the same
// item.
func (m *Mode) GetData(t InputType, id InputID) *InputItem {
	m.mustValidType(t)
	if item, ok := m.config[t][id]; ok {
		return item
	}
	item := &InputItem{InputType: t, InputID: id}
	m.config[t][id] = item
	m.order[t] = append(m.order[t], id)
	return item
}

// SetData replaces the input item for the given slot.
func (m *Mode) SetData(t InputType, id InputID, item *InputItem) {
	m.mustValidType(t)
	if _, ok := m.config[t][id]; !ok {
		m.order[t] = append(m.order[t], id)
	}
	m.config[t][id] = item
}

// DeleteData removes the input item for the given slot. Deleting a slot
// that holds no item is a no-op.
func (m *Mode) DeleteData(t InputType, id InputID) {
	m.mustValidType(t)
	if _, ok := m.config[t][id]; !ok {
		return
	}
	delete(m.config[t], id)
	m.order[t] = slices.DeleteFunc(m.order[t], func(other InputID) bool {
		return other == id
	})
}

// Items returns the input items of one input type in insertion order.
func (m *Mode) Items(t InputType) []*InputItem {
	m.mustValidType(t)
	out := make([]*InputItem, 0, len(m.order[t]))
	for _, id := range m.order[t] {
		out = append(out, m.config[t][id])
	}
	return out
}

// InputItem binds an ordered action list to one physical input.
type InputItem struct {
	InputType InputType
	InputID   InputID

	// AlwaysExecute keeps the bound actions running even while the owning
	// mode is not active. Execution semantics live outside this core; the
	// flag is only persisted here.
	AlwaysExecute bool

	// Actions in execution order.
	Actions []action.Binding
}

// Module is a persisted reference to a plugin file together with its
// configured instances.
type Module struct {
	FileName  string
	Instances []*Instance
}

// Instance is one named instantiation of a plugin and its variable values.
type Instance struct {
	Name   string
	Values []InstanceValue
}

// InstanceValue is one persisted, type-tagged variable value. Primitive
// values live in Value; input-reference values live in Input.
type InstanceValue struct {
	Label string

	// Type is the variable type tag: "int", "float", "string", "mode",
	// "virtual_input" or "physical_input".
	Type string

	Value string
	Input *InputValue
}

// InputValue is the persisted form of a virtual or physical input
// reference. HardwareID doubles as the vJoy device id for virtual inputs;
// WindowsID is only meaningful for physical ones.
type InputValue struct {
	HardwareID int64
	WindowsID  int64
	InputType  string
	InputID    int64
}
