package main

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rtscamera"
	"github.com/milk9111/rtscamera/ecs"
	"github.com/milk9111/rtscamera/ecs/component"
	"github.com/milk9111/rtscamera/ecs/entity"
	"github.com/milk9111/rtscamera/input"
	"github.com/milk9111/rtscamera/input/ebitendevice"
	"github.com/milk9111/rtscamera/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	patrolRadius = 30
)

var (
	unitColor   = color.RGBA{R: 255, G: 200, B: 60, A: 255}
	patrolColor = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	focusColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

type Game struct {
	frames int
	width  int
	height int

	world   *ecs.World
	plugin  *rtscamera.Plugin
	device  *ebitendevice.Device
	watcher *prefabs.Watcher

	camera ecs.Entity
	units  []ecs.Entity
	patrol ecs.Entity
	jumpTo int

	status string
}

type gameOptions struct {
	config   string
	controls string
	script   string
	watch    bool
}

func NewGame(opts gameOptions) (*Game, error) {
	g := &Game{
		width:  baseWidth,
		height: baseHeight,
		world:  ecs.NewWorld(),
	}

	pluginOpts := rtscamera.Options{OnEvent: g.onEvent}
	if opts.watch {
		watcher, err := prefabs.NewWatcher(prefabs.DiskDir, prefabs.DiskDir+"/scripts")
		if err != nil {
			log.Printf("rtsdemo: hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
			pluginOpts.Changes = watcher
		}
	}
	g.plugin = rtscamera.Install(g.world, pluginOpts)

	if err := g.buildScene(); err != nil {
		return nil, err
	}

	cam, err := entity.NewCameraFromPrefab(g.world, opts.config)
	if err != nil {
		return nil, err
	}
	g.camera = cam

	controls, err := ebitendevice.LoadControls(opts.controls)
	if err != nil {
		log.Printf("rtsdemo: using default controls: %v", err)
		controls = ebitendevice.DefaultControls()
	}
	g.device = ebitendevice.New(controls.Bindings)
	g.device.SetViewport(g.width, g.height)
	src := input.Sources{
		input.NewPointerSource(g.device, controls.Settings),
		ebitendevice.NewGamepadSource(controls.Deadzone),
	}
	if err := entity.AttachControls(g.world, cam, src); err != nil {
		return nil, err
	}

	if opts.script != "" {
		if err := entity.AttachScript(g.world, cam, opts.script); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Game) buildScene() error {
	if _, err := entity.NewBox(g.world, 200, 200, 0, mgl32.Vec3{}); err != nil {
		return err
	}
	boxes := []struct {
		w, d, h float32
		pos     mgl32.Vec3
	}{
		{12, 8, 4, mgl32.Vec3{-20, 0, -15}},
		{6, 6, 10, mgl32.Vec3{18, 0, -25}},
		{20, 4, 2, mgl32.Vec3{0, 0, 25}},
		{4, 4, 3, mgl32.Vec3{18, 10, -25}},
	}
	for _, b := range boxes {
		if _, err := entity.NewBox(g.world, b.w, b.d, b.h, b.pos); err != nil {
			return err
		}
	}
	if _, err := entity.NewHill(g.world, 15, mgl32.Vec3{40, -8, 30}); err != nil {
		return err
	}

	for x := -2; x <= 2; x++ {
		for z := -2; z <= 2; z++ {
			u, err := entity.NewUnit(g.world, mgl32.Vec3{float32(x) * 8, 0, float32(z)*8 - 50})
			if err != nil {
				return err
			}
			g.units = append(g.units, u)
		}
	}

	patrol, err := entity.NewUnit(g.world, mgl32.Vec3{patrolRadius, 0, 0})
	if err != nil {
		return err
	}
	g.patrol = patrol
	return nil
}

func (g *Game) Update() error {
	g.frames++
	dt := 1 / float32(ebiten.TPS())

	g.movePatrol()
	g.handleKeys()
	g.world.Update(dt)
	return nil
}

func (g *Game) movePatrol() {
	t, ok := ecs.Get(g.world, g.patrol, component.TransformComponent.Kind())
	if !ok {
		return
	}
	angle := g.world.Elapsed() * 0.3
	x := float32(math.Cos(angle)) * patrolRadius
	z := float32(math.Sin(angle)) * patrolRadius
	h, _ := g.plugin.Terrain().HeightAt(x, z)
	t.Position = mgl32.Vec3{x, h, z}
}

func (g *Game) handleKeys() {
	cam, ok := ecs.Get(g.world, g.camera, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		if !entity.Unlock(g.world, g.camera) {
			if err := entity.LockOn(g.world, g.camera, g.patrol); err != nil {
				log.Printf("rtsdemo: lock: %v", err)
			}
			g.status = "locked on patrol"
		} else {
			g.status = "unlocked"
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyJ) && len(g.units) > 0 {
		g.jumpTo = (g.jumpTo + 1) % len(g.units)
		if t, ok := ecs.Get(g.world, g.units[g.jumpTo], component.TransformComponent.Kind()); ok {
			cam.Camera.SnapTo(t.Position.X(), t.Position.Z())
			g.status = fmt.Sprintf("jumped to unit %d", g.jumpTo)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		if c, ok := ecs.Get(g.world, g.camera, component.ControlsComponent.Kind()); ok {
			c.Enabled = !c.Enabled
			g.status = fmt.Sprintf("controls enabled=%v", c.Enabled)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyK) && len(g.units) > 0 {
		victim := g.units[len(g.units)-1]
		g.units = g.units[:len(g.units)-1]
		ecs.DestroyEntity(g.world, victim)
		g.jumpTo = 0
	}
}

func (g *Game) onEvent(evt ecs.CameraEvent) {
	switch evt.Kind {
	case ecs.CameraEventLockReleased:
		g.status = fmt.Sprintf("lock on %v released", evt.Target)
	case ecs.CameraEventConfigReloaded:
		g.status = "camera config reloaded"
	case ecs.CameraEventConfigRejected, ecs.CameraEventScriptFailed:
		g.status = fmt.Sprintf("%v: %v", evt.Kind, evt.Err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	cam, ok := ecs.Get(g.world, g.camera, component.CameraComponent.Kind())
	if !ok {
		return
	}
	pose := cam.Camera.Pose()
	cfg := cam.Camera.Config()
	proj := newProjector(pose.View(), cfg.Projection(float32(g.width)/float32(g.height), nearPlane, farPlane), g.width, g.height)

	g.plugin.Terrain().DebugDraw(&groundDrawer{screen: screen, proj: proj, ground: g.plugin.Terrain()})

	for _, u := range g.units {
		if t, ok := ecs.Get(g.world, u, component.TransformComponent.Kind()); ok {
			proj.cross(screen, g.onGround(t.Position), 1, unitColor)
		}
	}
	if t, ok := ecs.Get(g.world, g.patrol, component.TransformComponent.Kind()); ok {
		proj.cross(screen, t.Position, 1.5, patrolColor)
	}
	proj.cross(screen, pose.Focus, 0.5, focusColor)

	actual := cam.Camera.Actual()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Frames: %d    FPS: %.2f\nfocus %.1f %.1f %.1f  zoom %.2f  yaw %.0f  pitch %.0f  dist %.1f\nlocked %v  %s\n[WASD] pan [Q/E] rotate [R/F] pitch [wheel] zoom [L] lock [J] jump [T] controls [K] remove unit",
		g.frames, ebiten.ActualFPS(),
		actual.Focus.X(), actual.Focus.Y(), actual.Focus.Z(), actual.Zoom,
		mgl32.RadToDeg(actual.Yaw), mgl32.RadToDeg(actual.Pitch), pose.Distance,
		cam.Camera.Locked(), g.status,
	))
}

func (g *Game) onGround(p mgl32.Vec3) mgl32.Vec3 {
	if h, ok := g.plugin.Terrain().HeightAt(p.X(), p.Z()); ok {
		p[1] = h
	}
	return p
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	g.device.SetViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("rtsdemo: close watcher: %v", err)
		}
	}
}
