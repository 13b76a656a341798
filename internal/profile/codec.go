package profile

import (
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jmriego/gremlin/internal/action"
	"github.com/jmriego/gremlin/internal/ctxlog"
	"github.com/jmriego/gremlin/internal/xmlutil"
)

// formatVersion is written to the document root. Older documents carry no
// version and still parse.
const formatVersion = "1"

// variableTypeTags is the set of type tags accepted for persisted
// instance variable values.
var variableTypeTags = map[string]bool{
	"int":            true,
	"float":          true,
	"string":         true,
	"mode":           true,
	"virtual_input":  true,
	"physical_input": true,
}

// Load reads and parses a profile document. Structural defects abort the
// load with an error wrapping ErrInvalidFormat; actions with tags missing
// from the registry are skipped with a warning and do not abort parsing.
func Load(ctx context.Context, path string, actions *action.Registry) (*Profile, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	return parseDocument(ctx, doc, actions)
}

// Parse parses a profile document held in memory.
func Parse(ctx context.Context, data []byte, actions *action.Registry) (*Profile, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	return parseDocument(ctx, doc, actions)
}

func parseDocument(ctx context.Context, doc *etree.Document, actions *action.Registry) (*Profile, error) {
	root := doc.SelectElement("devices")
	if root == nil {
		return nil, fmt.Errorf("%w: missing <devices> root element", ErrInvalidFormat)
	}

	p := New()
	for _, el := range root.SelectElements("device") {
		d, err := parseDevice(ctx, el, actions)
		if err != nil {
			return nil, err
		}
		p.AddDevice(d)
	}

	if imports := root.SelectElement("import"); imports != nil {
		for _, el := range imports.SelectElements("module") {
			name, err := xmlutil.Attr(el, "name")
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
			}
			p.AddImport(name)
		}
	}

	if modules := root.SelectElement("modules"); modules != nil {
		for _, el := range modules.SelectElements("module") {
			mod, err := parseModule(el)
			if err != nil {
				return nil, err
			}
			p.Modules = append(p.Modules, mod)
		}
	}

	return p, nil
}

func parseDevice(ctx context.Context, el *etree.Element, actions *action.Registry) (*Device, error) {
	name, err := xmlutil.Attr(el, "name")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}
	hardwareID, err := xmlutil.IntAttr(el, "id")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}
	windowsID, err := xmlutil.IntAttr(el, "windows_id")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}

	typ := JoystickDevice
	if name == "keyboard" {
		typ = KeyboardDevice
	}
	d := NewDevice(name, hardwareID, windowsID, typ)

	for _, child := range el.ChildElements() {
		if child.Tag != "mode" {
			return nil, fmt.Errorf("%w: unexpected element <%s> in <device>", ErrInvalidFormat, child.Tag)
		}
		m, err := parseMode(ctx, child, actions)
		if err != nil {
			return nil, err
		}
		// A parsed "global" mode replaces the implicit empty one.
		d.setMode(m)
	}
	return d, nil
}

func parseMode(ctx context.Context, el *etree.Element, actions *action.Registry) (*Mode, error) {
	name, err := xmlutil.Attr(el, "name")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}
	m := NewMode(name)
	for _, child := range el.ChildElements() {
		item, err := parseItem(ctx, child, actions)
		if err != nil {
			return nil, err
		}
		m.SetData(item.InputType, item.InputID, item)
	}
	return m, nil
}

func parseItem(ctx context.Context, el *etree.Element, actions *action.Registry) (*InputItem, error) {
	logger := ctxlog.FromContext(ctx)

	inputType, err := InputTypeFromTag(el.Tag)
	if err != nil {
		return nil, err
	}
	id, err := xmlutil.IntAttr(el, "id")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}
	alwaysExecute, err := xmlutil.OptionalBoolAttr(el, "always-execute", false)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}

	inputID := NewInputID(id)
	if inputType == Keyboard {
		// The extended flag is part of the key's identity and mandatory.
		extended, err := xmlutil.BoolAttr(el, "extended")
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
		}
		inputID = NewKeyID(id, extended)
	}

	item := &InputItem{
		InputType:     inputType,
		InputID:       inputID,
		AlwaysExecute: alwaysExecute,
	}
	for _, child := range el.ChildElements() {
		ctor, ok := actions.Resolve(child.Tag)
		if !ok {
			logger.Warn("Skipping unknown action tag.",
				"tag", child.Tag, "input", el.Tag, "id", id)
			continue
		}
		binding := ctor()
		if err := binding.FromXML(child); err != nil {
			return nil, fmt.Errorf("%w: action %q: %s", ErrInvalidFormat, child.Tag, err)
		}
		item.Actions = append(item.Actions, binding)
	}
	return item, nil
}

func parseModule(el *etree.Element) (*Module, error) {
	fileName, err := xmlutil.Attr(el, "file-name")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}
	mod := &Module{FileName: fileName}
	for _, instEl := range el.SelectElements("instance") {
		name, err := xmlutil.Attr(instEl, "name")
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
		}
		inst := &Instance{Name: name}
		for _, varEl := range instEl.SelectElements("variable") {
			value, err := parseInstanceValue(varEl)
			if err != nil {
				return nil, err
			}
			inst.Values = append(inst.Values, value)
		}
		mod.Instances = append(mod.Instances, inst)
	}
	return mod, nil
}

func parseInstanceValue(el *etree.Element) (InstanceValue, error) {
	label, err := xmlutil.Attr(el, "label")
	if err != nil {
		return InstanceValue{}, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}
	typeTag, err := xmlutil.Attr(el, "type")
	if err != nil {
		return InstanceValue{}, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}
	if !variableTypeTags[typeTag] {
		return InstanceValue{}, fmt.Errorf("%w: unknown variable type %q", ErrInvalidFormat, typeTag)
	}

	value := InstanceValue{Label: label, Type: typeTag}
	if typeTag == "virtual_input" || typeTag == "physical_input" {
		input, err := parseInputValue(el)
		if err != nil {
			return InstanceValue{}, err
		}
		value.Input = input
		return value, nil
	}

	raw, err := xmlutil.Attr(el, "value")
	if err != nil {
		return InstanceValue{}, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}
	value.Value = raw
	return value, nil
}

func parseInputValue(el *etree.Element) (*InputValue, error) {
	hardwareID, err := xmlutil.IntAttr(el, "hardware-id")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}
	inputType, err := xmlutil.Attr(el, "input-type")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}
	inputID, err := xmlutil.IntAttr(el, "input-id")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}
	input := &InputValue{
		HardwareID: hardwareID,
		InputType:  inputType,
		InputID:    inputID,
	}
	if el.SelectAttr("windows-id") != nil {
		windowsID, err := xmlutil.IntAttr(el, "windows-id")
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
		}
		input.WindowsID = windowsID
	}
	return input, nil
}

// Save writes the profile as pretty-printed XML. Devices serialize in
// insertion order, modes and items in their stored order, so that a
// load of the written document reproduces the profile exactly.
func Save(p *Profile, path string) error {
	doc := buildDocument(p)
	doc.Indent(4)
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("writing profile %s: %w", path, err)
	}
	return nil
}

// Marshal renders the profile as pretty-printed XML.
func Marshal(p *Profile) ([]byte, error) {
	doc := buildDocument(p)
	doc.Indent(4)
	return doc.WriteToBytes()
}

func buildDocument(p *Profile) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("devices")
	root.CreateAttr("version", formatVersion)

	for _, d := range p.Devices() {
		root.AddChild(deviceToXML(d))
	}

	importEl := root.CreateElement("import")
	for _, name := range p.Imports {
		module := importEl.CreateElement("module")
		module.CreateAttr("name", name)
	}

	if len(p.Modules) > 0 {
		modulesEl := root.CreateElement("modules")
		for _, mod := range p.Modules {
			modulesEl.AddChild(moduleToXML(mod))
		}
	}
	return doc
}

func deviceToXML(d *Device) *etree.Element {
	el := etree.NewElement("device")
	el.CreateAttr("name", d.Name)
	el.CreateAttr("id", strconv.FormatInt(d.HardwareID, 10))
	el.CreateAttr("windows_id", strconv.FormatInt(d.WindowsID, 10))
	for _, m := range d.Modes() {
		el.AddChild(modeToXML(m))
	}
	return el
}

func modeToXML(m *Mode) *etree.Element {
	el := etree.NewElement("mode")
	el.CreateAttr("name", m.Name)
	for _, t := range inputTypes {
		for _, item := range m.Items(t) {
			el.AddChild(itemToXML(item))
		}
	}
	return el
}

func itemToXML(item *InputItem) *etree.Element {
	el := etree.NewElement(item.InputType.Tag())
	el.CreateAttr("id", strconv.FormatInt(item.InputID.ID, 10))
	if item.InputType == Keyboard {
		el.CreateAttr("extended", xmlutil.FormatBool(item.InputID.Extended))
	}
	if item.AlwaysExecute {
		el.CreateAttr("always-execute", "True")
	}
	for _, binding := range item.Actions {
		el.AddChild(binding.ToXML())
	}
	return el
}

func moduleToXML(mod *Module) *etree.Element {
	el := etree.NewElement("module")
	el.CreateAttr("file-name", mod.FileName)
	for _, inst := range mod.Instances {
		instEl := el.CreateElement("instance")
		instEl.CreateAttr("name", inst.Name)
		for _, value := range inst.Values {
			instEl.AddChild(instanceValueToXML(value))
		}
	}
	return el
}

func instanceValueToXML(value InstanceValue) *etree.Element {
	el := etree.NewElement("variable")
	el.CreateAttr("label", value.Label)
	el.CreateAttr("type", value.Type)
	if value.Input != nil {
		el.CreateAttr("hardware-id", strconv.FormatInt(value.Input.HardwareID, 10))
		if value.Input.WindowsID != 0 {
			el.CreateAttr("windows-id", strconv.FormatInt(value.Input.WindowsID, 10))
		}
		el.CreateAttr("input-type", value.Input.InputType)
		el.CreateAttr("input-id", strconv.FormatInt(value.Input.InputID, 10))
		return el
	}
	el.CreateAttr("value", value.Value)
	return el
}
