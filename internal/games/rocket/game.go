// Package rocket implements Rocket Scientist: answer math problems to fill
// the tank, then fly from Earth, orbit the Moon and land on it.
//
// The game is a thin adapter between the platform and two pure packages:
// quiz produces the starting fuel and flight runs the physics.
package rocket

import (
	"math/rand"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kids-arcade/internal/config"
	"github.com/vovakirdan/kids-arcade/internal/core"
	"github.com/vovakirdan/kids-arcade/internal/games/rocket/flight"
	"github.com/vovakirdan/kids-arcade/internal/games/rocket/quiz"
	"github.com/vovakirdan/kids-arcade/internal/logging"
	"github.com/vovakirdan/kids-arcade/internal/registry"
	"github.com/vovakirdan/kids-arcade/internal/storage"
)

// GameID is the registry and score-table identifier.
const GameID = "rocket"

const gameTitle = "Rocket Scientist"

// maxAnswerDigits bounds the typed answer; the largest answer is well below.
const maxAnswerDigits = 4

// Stage is the part of an attempt the player is in.
type Stage int

const (
	StageQuiz   Stage = iota // answering problems to earn fuel
	StageFlight              // flying, including the pause after landing or crashing
	StageResult              // attempt over, restart offered
	StageNoFuel              // stranded on the primary body with an empty tank
)

// Publisher receives telemetry for every simulated tick.
type Publisher interface {
	Publish(t flight.Telemetry)
}

// FlightRecorder stores finished flights.
type FlightRecorder interface {
	SaveFlight(r storage.FlightRecord) (int64, error)
}

var (
	// configPath stores the custom config path set via CLI
	configPath       string
	difficultyPreset config.DifficultyPreset

	defaultPublisher Publisher
	defaultRecorder  FlightRecorder
	defaultLogger    *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config default.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetPublisher sets the telemetry sink used by games created afterwards.
func SetPublisher(p Publisher) {
	defaultPublisher = p
}

// SetRecorder sets the flight log used by games created afterwards.
func SetRecorder(r FlightRecorder) {
	defaultRecorder = r
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	defaultLogger = l
}

// Option customizes a Game.
type Option func(*Game)

// WithConfig uses cfg instead of loading configuration on Reset.
func WithConfig(cfg config.RocketConfig) Option {
	return func(g *Game) {
		g.fixedCfg = &cfg
	}
}

// WithPublisher sets the telemetry sink.
func WithPublisher(p Publisher) Option {
	return func(g *Game) { g.publisher = p }
}

// WithRecorder sets the flight log.
func WithRecorder(r FlightRecorder) Option {
	return func(g *Game) { g.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// Game implements registry.Game for Rocket Scientist.
type Game struct {
	fixedCfg   *config.RocketConfig
	cfg        config.RocketConfig
	world      flight.World
	params     flight.Params
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	rng        *rand.Rand

	stage  Stage
	paused bool
	ticks  int // ticks since Reset, drives animations

	// Quiz
	quiz          *quiz.Session
	answer        []rune
	feedback      string // "" when not showing feedback
	feedbackOK    bool
	feedbackTicks int

	// Flight
	sim         *flight.Simulator
	path        []core.Vec2
	fuelStart   float64
	maxSpeed    float64 // units per second
	revealTicks int
	score       int

	// Progress over the whole play session, kept across Reset.
	sessionScore int
	landings     int

	publisher Publisher
	recorder  FlightRecorder
	logger    *log.Logger
}

// New creates a new Rocket Scientist game instance.
func New(opts ...Option) *Game {
	g := &Game{
		publisher: defaultPublisher,
		recorder:  defaultRecorder,
		logger:    defaultLogger,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logging.Discard()
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return gameTitle
}

// Reset starts a new attempt with a fresh quiz.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.loadConfig()

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.stage = StageQuiz
	g.paused = false
	g.ticks = 0
	g.answer = g.answer[:0]
	g.feedback = ""
	g.feedbackTicks = 0
	g.sim = nil
	g.path = nil
	g.fuelStart = 0
	g.maxSpeed = 0
	g.revealTicks = 0
	g.score = 0

	base, err := g.cfg.QuizSettings()
	if err != nil {
		base = quiz.DefaultSettings()
	}
	settings := g.difficulty.QuizSettings(base, g.sessionScore, g.landings)
	problems, err := quiz.Generate(settings, g.rng)
	if err != nil {
		g.logger.Error("cannot generate quiz", "error", err)
		problems, _ = quiz.Generate(quiz.DefaultSettings(), g.rng)
	}
	g.quiz = quiz.NewSession(problems)
	g.logger.Debug("quiz started", "problems", len(problems), "range", settings.NumberRange)
}

// loadConfig resolves the configuration and the simulator types built from it.
// An invalid file falls back to the defaults so the game stays playable.
func (g *Game) loadConfig() {
	var cfg config.RocketConfig
	if g.fixedCfg != nil {
		cfg = *g.fixedCfg
	} else {
		loaded, err := config.LoadRocket(configPath)
		if err != nil {
			g.logger.Warn("using default rocket config", "error", err)
			loaded = config.DefaultRocketConfig()
		}
		cfg = loaded
		if difficultyPreset != "" {
			config.ApplyRocketPreset(&cfg, difficultyPreset)
		}
	}

	world, err := cfg.FlightWorld()
	if err == nil {
		err = world.Validate()
	}
	params := cfg.FlightParams()
	if err == nil {
		err = params.Validate()
	}
	if err != nil {
		g.logger.Warn("invalid rocket config, using defaults", "error", err)
		cfg = config.DefaultRocketConfig()
		world = flight.DefaultWorld()
		params = flight.DefaultParams()
	}

	g.cfg = cfg
	g.world = world
	g.params = params
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
}

// Resize records a new screen size. The world is rescaled on the next
// Render, so a flight or quiz in progress is not restarted.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && g.stage == StageFlight && !g.sim.Phase().Terminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.ticks++
	switch g.stage {
	case StageQuiz:
		g.stepQuiz(in)
	case StageFlight:
		g.stepFlight(in)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) stepQuiz(in core.InputFrame) {
	if g.feedbackTicks > 0 {
		g.feedbackTicks--
		if g.feedbackTicks == 0 {
			g.feedback = ""
			if g.quiz.Done() {
				g.launch()
			}
		}
		return
	}

	for _, r := range in.Text {
		if r >= '0' && r <= '9' && len(g.answer) < maxAnswerDigits {
			g.answer = append(g.answer, r)
		}
	}
	if in.Has(core.ActionErase) && len(g.answer) > 0 {
		g.answer = g.answer[:len(g.answer)-1]
	}
	if !in.Has(core.ActionConfirm) || len(g.answer) == 0 {
		return
	}

	value, err := strconv.Atoi(string(g.answer))
	if err != nil {
		g.answer = g.answer[:0]
		return
	}
	correct, err := g.quiz.Submit(value)
	if err != nil {
		g.launch()
		return
	}

	g.answer = g.answer[:0]
	g.feedbackOK = correct
	if correct {
		g.feedback = "Correct!"
	} else {
		g.feedback = "Try again next time!"
	}
	g.feedbackTicks = g.runtime.TicksFor(g.cfg.Quiz.FeedbackMs)
}

// launch turns the quiz result into a flight. An empty tank still launches:
// the rocket rests on the pad until stepFlight sees it stranded.
func (g *Game) launch() {
	g.fuelStart = g.quiz.Fuel()
	sim, err := flight.New(g.world, g.params, g.cfg.FlightLaunch(g.world, g.fuelStart))
	if err != nil {
		// The world and params were validated in Reset; only the launch can fail.
		g.logger.Error("cannot start flight", "error", err)
		g.stage = StageNoFuel
		return
	}
	g.sim = sim
	g.stage = StageFlight
	g.logger.Info("flight launched", "fuel", g.fuelStart, "correct", g.quiz.Correct(), "problems", g.quiz.Len())
	g.publish()
}

func (g *Game) stepFlight(in core.InputFrame) {
	if g.sim.Phase().Terminal() {
		if g.revealTicks > 0 {
			g.revealTicks--
		}
		if g.revealTicks == 0 {
			g.stage = StageResult
		}
		return
	}

	ev, err := g.sim.Tick(flight.InputState{
		RotateLeft:  in.Has(core.ActionRotateLeft),
		RotateRight: in.Has(core.ActionRotateRight),
		Thrust:      in.Has(core.ActionThrust),
	})
	if err != nil {
		g.logger.Error("flight tick failed", "error", err, "tick", g.sim.Ticks())
		g.stage = StageResult
		return
	}

	t := g.sim.Telemetry()
	g.maxSpeed = max(g.maxSpeed, t.SpeedPerSecond)
	if ev.OrbitsCompleted > 0 {
		g.logger.Debug("orbit completed", "orbits", t.Orbits)
	}
	g.publish()

	if ev.Phase.Terminal() {
		g.finish(ev)
		return
	}
	if ev.Resting && g.sim.State().Fuel <= 0 {
		g.path = nil
		g.stage = StageNoFuel
		g.logger.Info("stranded without fuel", "fuel_start", g.fuelStart, "ticks", g.sim.Ticks())
		return
	}
	if g.cfg.View.PredictionTicks > 0 {
		g.path = g.sim.Predict(g.cfg.View.PredictionTicks, flight.InputState{})
	}
}

// finish records the end of a flight and starts the reveal countdown.
func (g *Game) finish(ev flight.Event) {
	st := g.sim.State()
	g.path = nil
	g.revealTicks = g.runtime.TicksFor(int(ev.RevealAfter.Milliseconds()))

	outcome := storage.OutcomeCrashed
	if st.Phase == flight.Landed {
		outcome = storage.OutcomeLanded
		g.score = flight.Score(st.OrbitCount())
		g.sessionScore += g.score
		g.landings++
	}

	g.logger.Info("flight ended",
		"outcome", outcome,
		"orbits", st.OrbitCount(),
		"score", g.score,
		"ticks", g.sim.Ticks(),
		"fuel_left", st.Fuel,
	)

	if g.recorder == nil {
		return
	}
	_, err := g.recorder.SaveFlight(storage.FlightRecord{
		Outcome:     outcome,
		Score:       g.score,
		Orbits:      st.OrbitCount(),
		FuelStart:   g.fuelStart,
		FuelLeft:    st.Fuel,
		Ticks:       g.sim.Ticks(),
		MaxSpeed:    g.maxSpeed,
		QuizCorrect: g.quiz.Correct(),
		QuizTotal:   g.quiz.Len(),
	})
	if err != nil {
		g.logger.Warn("cannot record flight", "error", err)
	}
}

func (g *Game) publish() {
	if g.publisher != nil && g.sim != nil {
		g.publisher.Publish(g.sim.Telemetry())
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.stage == StageResult || g.stage == StageNoFuel,
		Paused:   g.paused,
	}
}

// Stage returns the current stage.
func (g *Game) Stage() Stage {
	return g.stage
}

// Simulator returns the running flight, or nil before launch.
func (g *Game) Simulator() *flight.Simulator {
	return g.sim
}

// Register the game with the registry
func init() {
	registry.Register(GameID, gameTitle, func() registry.Game {
		return New()
	})
}

// HoldMs returns how long a key press keeps rotation or thrust active.
func (g *Game) HoldMs() int {
	return g.cfg.Input.HoldMs
}
