package ebitendevice

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rtscamera/input"
	"github.com/milk9111/rtscamera/prefabs"
)

// Binding is every physical control that triggers one action.
type Binding struct {
	Keys    []ebiten.Key
	Mouse   []ebiten.MouseButton
	Gamepad []ebiten.StandardGamepadButton
}

type Bindings map[input.Action]Binding

// Controls is the decoded controls prefab.
type Controls struct {
	Bindings Bindings
	Deadzone float64
	Settings input.PointerSettings
}

type controlsSpec struct {
	Bindings map[string][]string `yaml:"bindings"`
	Gamepad  struct {
		Deadzone float64             `yaml:"deadzone"`
		Buttons  map[string][]string `yaml:"buttons"`
	} `yaml:"gamepad"`
	Settings input.PointerSettings `yaml:"settings"`
}

var mouseButtons = map[string]ebiten.MouseButton{
	"mouse_left":   ebiten.MouseButtonLeft,
	"mouse_right":  ebiten.MouseButtonRight,
	"mouse_middle": ebiten.MouseButtonMiddle,
}

var gamepadButtons = map[string]ebiten.StandardGamepadButton{
	"right_bottom":       ebiten.StandardGamepadButtonRightBottom,
	"right_right":        ebiten.StandardGamepadButtonRightRight,
	"right_left":         ebiten.StandardGamepadButtonRightLeft,
	"right_top":          ebiten.StandardGamepadButtonRightTop,
	"front_top_left":     ebiten.StandardGamepadButtonFrontTopLeft,
	"front_top_right":    ebiten.StandardGamepadButtonFrontTopRight,
	"front_bottom_left":  ebiten.StandardGamepadButtonFrontBottomLeft,
	"front_bottom_right": ebiten.StandardGamepadButtonFrontBottomRight,
	"left_top":           ebiten.StandardGamepadButtonLeftTop,
	"left_bottom":        ebiten.StandardGamepadButtonLeftBottom,
	"left_left":          ebiten.StandardGamepadButtonLeftLeft,
	"left_right":         ebiten.StandardGamepadButtonLeftRight,
}

func DefaultBindings() Bindings {
	return Bindings{
		input.ActionPanForward:  {Keys: []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}},
		input.ActionPanBack:     {Keys: []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}},
		input.ActionPanLeft:     {Keys: []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}},
		input.ActionPanRight:    {Keys: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}},
		input.ActionRotateLeft:  {Keys: []ebiten.Key{ebiten.KeyQ}},
		input.ActionRotateRight: {Keys: []ebiten.Key{ebiten.KeyE}},
		input.ActionRotateDrag:  {Mouse: []ebiten.MouseButton{ebiten.MouseButtonMiddle}},
		input.ActionGrab:        {Mouse: []ebiten.MouseButton{ebiten.MouseButtonRight}},
	}
}

func DefaultControls() Controls {
	return Controls{
		Bindings: DefaultBindings(),
		Deadzone: 0.2,
		Settings: input.DefaultPointerSettings(),
	}
}

// LoadControls reads a controls prefab. Actions the file does not mention keep
// their default bindings.
func LoadControls(filename string) (Controls, error) {
	out := DefaultControls()
	spec := controlsSpec{Settings: out.Settings}
	spec.Gamepad.Deadzone = out.Deadzone
	if err := prefabs.LoadSpec(filename, &spec); err != nil {
		return Controls{}, err
	}

	for name, controls := range spec.Bindings {
		action, ok := input.ParseAction(name)
		if !ok {
			return Controls{}, fmt.Errorf("controls: %s: unknown action %q", filename, name)
		}
		b, err := parseBinding(controls)
		if err != nil {
			return Controls{}, fmt.Errorf("controls: %s: %s: %w", filename, name, err)
		}
		b.Gamepad = out.Bindings[action].Gamepad
		out.Bindings[action] = b
	}
	for name, buttons := range spec.Gamepad.Buttons {
		action, ok := input.ParseAction(name)
		if !ok {
			return Controls{}, fmt.Errorf("controls: %s: unknown action %q", filename, name)
		}
		b := out.Bindings[action]
		b.Gamepad = b.Gamepad[:0:0]
		for _, button := range buttons {
			gb, ok := gamepadButtons[strings.ToLower(button)]
			if !ok {
				return Controls{}, fmt.Errorf("controls: %s: %s: unknown gamepad button %q", filename, name, button)
			}
			b.Gamepad = append(b.Gamepad, gb)
		}
		out.Bindings[action] = b
	}

	if spec.Gamepad.Deadzone < 0 || spec.Gamepad.Deadzone >= 1 {
		return Controls{}, fmt.Errorf("controls: %s: deadzone must be in [0, 1), got %v", filename, spec.Gamepad.Deadzone)
	}
	out.Deadzone = spec.Gamepad.Deadzone
	out.Settings = spec.Settings
	return out, nil
}

func parseBinding(names []string) (Binding, error) {
	var b Binding
	for _, name := range names {
		if mb, ok := mouseButtons[strings.ToLower(name)]; ok {
			b.Mouse = append(b.Mouse, mb)
			continue
		}
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return Binding{}, fmt.Errorf("unknown key %q: %w", name, err)
		}
		b.Keys = append(b.Keys, k)
	}
	return b, nil
}
