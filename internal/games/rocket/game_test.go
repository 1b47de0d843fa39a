package rocket

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/vovakirdan/kids-arcade/internal/config"
	"github.com/vovakirdan/kids-arcade/internal/core"
	"github.com/vovakirdan/kids-arcade/internal/games/rocket/flight"
	"github.com/vovakirdan/kids-arcade/internal/storage"
)

type fakePublisher struct {
	frames []flight.Telemetry
}

func (p *fakePublisher) Publish(t flight.Telemetry) {
	p.frames = append(p.frames, t)
}

type fakeRecorder struct {
	records []storage.FlightRecord
	err     error
}

func (r *fakeRecorder) SaveFlight(rec storage.FlightRecord) (int64, error) {
	r.records = append(r.records, rec)
	return int64(len(r.records)), r.err
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
}

// testConfig launches straight up so thrust tests are easy to reason about.
func testConfig() config.RocketConfig {
	cfg := config.DefaultRocketConfig()
	cfg.Launch.HeadingDegrees = 0
	return cfg
}

func newTestGame(cfg config.RocketConfig) (*Game, *fakePublisher, *fakeRecorder) {
	pub := &fakePublisher{}
	rec := &fakeRecorder{}
	g := New(WithConfig(cfg), WithPublisher(pub), WithRecorder(rec))
	g.Reset(testRuntime())
	return g, pub, rec
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func typed(text string, actions ...core.Action) core.InputFrame {
	f := frame(actions...)
	for _, r := range text {
		f.Type(r)
	}
	return f
}

// answerQuiz answers every problem, right or wrong, and waits out the
// feedback pause after each one.
func answerQuiz(t *testing.T, g *Game, correct bool) {
	t.Helper()
	for i := 0; i < 100 && g.Stage() == StageQuiz; i++ {
		p, ok := g.quiz.Current()
		if !ok {
			g.Step(frame())
			continue
		}
		answer := p.Answer
		if !correct {
			answer++
		}
		g.Step(typed(strconv.Itoa(answer), core.ActionConfirm))
		for g.feedbackTicks > 0 {
			g.Step(frame())
		}
	}
	if g.Stage() == StageQuiz {
		t.Fatalf("quiz did not finish")
	}
}

func TestGameIdentity(t *testing.T) {
	g := New()
	if g.ID() != "rocket" {
		t.Errorf("ID() = %q, expected %q", g.ID(), "rocket")
	}
	if g.Title() != "Rocket Scientist" {
		t.Errorf("Title() = %q, expected %q", g.Title(), "Rocket Scientist")
	}
}

func TestResetStartsQuiz(t *testing.T) {
	g, _, _ := newTestGame(testConfig())

	if g.Stage() != StageQuiz {
		t.Errorf("Stage() = %v, expected StageQuiz", g.Stage())
	}
	if g.quiz.Len() < 5 {
		t.Errorf("quiz has %d problems, expected at least 5", g.quiz.Len())
	}
	if g.Simulator() != nil {
		t.Error("Simulator() should be nil before launch")
	}
	if g.State().GameOver {
		t.Error("new game should not be over")
	}
}

func TestQuizAnswerEditing(t *testing.T) {
	g, _, _ := newTestGame(testConfig())

	g.Step(typed("12a"))
	if string(g.answer) != "12" {
		t.Errorf("answer = %q, expected %q", string(g.answer), "12")
	}

	g.Step(frame(core.ActionErase))
	if string(g.answer) != "1" {
		t.Errorf("after erase answer = %q, expected %q", string(g.answer), "1")
	}

	g.Step(typed("23456"))
	if len(g.answer) != maxAnswerDigits {
		t.Errorf("answer length = %d, expected %d", len(g.answer), maxAnswerDigits)
	}
}

func TestQuizEmptyConfirmIgnored(t *testing.T) {
	g, _, _ := newTestGame(testConfig())

	g.Step(frame(core.ActionConfirm))
	if g.quiz.Index() != 0 {
		t.Errorf("Index() = %d after empty confirm, expected 0", g.quiz.Index())
	}
	if g.feedback != "" {
		t.Errorf("feedback = %q, expected none", g.feedback)
	}
}

func TestQuizFeedbackPause(t *testing.T) {
	g, _, _ := newTestGame(testConfig())
	p, _ := g.quiz.Current()

	g.Step(typed(strconv.Itoa(p.Answer), core.ActionConfirm))
	if g.feedback != "Correct!" {
		t.Errorf("feedback = %q, expected %q", g.feedback, "Correct!")
	}
	want := testRuntime().TicksFor(1000)
	if g.feedbackTicks != want {
		t.Errorf("feedbackTicks = %d, expected %d", g.feedbackTicks, want)
	}

	// Input is ignored while feedback shows.
	g.Step(typed("7"))
	if len(g.answer) != 0 {
		t.Errorf("answer = %q during feedback, expected empty", string(g.answer))
	}
}

func TestPerfectQuizLaunchesFullTank(t *testing.T) {
	g, pub, _ := newTestGame(testConfig())
	answerQuiz(t, g, true)

	if g.Stage() != StageFlight {
		t.Fatalf("Stage() = %v, expected StageFlight", g.Stage())
	}
	if g.Simulator().State().Fuel != 100 {
		t.Errorf("Fuel = %v, expected 100", g.Simulator().State().Fuel)
	}
	if len(pub.frames) != 1 {
		t.Errorf("published %d frames at launch, expected 1", len(pub.frames))
	}
}

func TestFailedQuizLaunchesEmptyAndStrands(t *testing.T) {
	g, pub, rec := newTestGame(testConfig())
	answerQuiz(t, g, false)

	if g.Stage() != StageFlight {
		t.Fatalf("Stage() = %v, expected the empty rocket to launch", g.Stage())
	}
	pad := g.Simulator().State().Position
	if g.Simulator().State().Fuel != 0 {
		t.Errorf("Fuel = %v, expected 0", g.Simulator().State().Fuel)
	}

	// Thrust with an empty tank does nothing; the rocket settles on the pad.
	g.Step(frame(core.ActionThrust))
	if g.Stage() != StageNoFuel {
		t.Fatalf("Stage() = %v, expected StageNoFuel", g.Stage())
	}
	if g.Simulator().State().Position.Distance(pad) > 0.01 || g.Simulator().Phase() != flight.Flying {
		t.Errorf("state = %+v, expected the rocket resting on the pad", g.Simulator().State())
	}
	if !g.State().GameOver || g.State().Score != 0 {
		t.Errorf("State() = %+v, expected game over with score 0", g.State())
	}
	if len(pub.frames) != 2 || len(rec.records) != 0 {
		t.Errorf("got %d frames and %d records, expected 2 and 0", len(pub.frames), len(rec.records))
	}

	ticks := g.Simulator().Ticks()
	g.Step(frame(core.ActionThrust))
	if g.Simulator().Ticks() != ticks {
		t.Error("a stranded rocket should not be simulated further")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "NO FUEL") || !strings.Contains(out, "Fuel:") {
		t.Errorf("render should show the NO FUEL message over the flight:\n%s", out)
	}
}

func TestFlightPublishesEveryTick(t *testing.T) {
	g, pub, _ := newTestGame(testConfig())
	answerQuiz(t, g, true)

	for i := 0; i < 10; i++ {
		g.Step(frame())
	}
	if len(pub.frames) != 11 {
		t.Errorf("published %d frames, expected 11", len(pub.frames))
	}
	if last := pub.frames[len(pub.frames)-1]; last.Tick != 10 {
		t.Errorf("last frame tick = %d, expected 10", last.Tick)
	}
	if len(g.path) != testConfig().View.PredictionTicks {
		t.Errorf("path has %d points, expected %d", len(g.path), testConfig().View.PredictionTicks)
	}
}

func TestPauseFreezesFlight(t *testing.T) {
	g, _, _ := newTestGame(testConfig())
	answerQuiz(t, g, true)

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused after ActionPause")
	}
	ticks := g.Simulator().Ticks()
	for i := 0; i < 5; i++ {
		g.Step(frame(core.ActionThrust))
	}
	if g.Simulator().Ticks() != ticks {
		t.Errorf("Ticks() = %d while paused, expected %d", g.Simulator().Ticks(), ticks)
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("expected resumed after second ActionPause")
	}
}

func TestCrashIsRecorded(t *testing.T) {
	cfg := testConfig()
	// Moon hanging right above the launch pad: full thrust hits it hard.
	cfg.World.Secondary.X = 300
	cfg.World.Secondary.Y = 1300
	g, _, rec := newTestGame(cfg)
	answerQuiz(t, g, true)

	for i := 0; i < 1000 && !g.Simulator().Phase().Terminal(); i++ {
		g.Step(frame(core.ActionThrust))
	}
	if g.Simulator().Phase() != flight.Crashed {
		t.Fatalf("Phase() = %v, expected crashed", g.Simulator().Phase())
	}
	if len(rec.records) != 1 {
		t.Fatalf("recorded %d flights, expected 1", len(rec.records))
	}
	r := rec.records[0]
	if r.Outcome != storage.OutcomeCrashed || r.Score != 0 {
		t.Errorf("record = %+v, expected a crash with score 0", r)
	}
	if r.MaxSpeed <= cfg.Physics.CrashSpeed {
		t.Errorf("MaxSpeed = %v, expected above %v", r.MaxSpeed, cfg.Physics.CrashSpeed)
	}
	if g.State().Score != 0 {
		t.Errorf("Score = %d, expected 0", g.State().Score)
	}

	// The result appears only after the crash reveal delay.
	reveal := testRuntime().TicksFor(cfg.Physics.CrashedRevealMs)
	for i := 0; i < reveal-1; i++ {
		g.Step(frame())
	}
	if g.Stage() != StageFlight {
		t.Errorf("Stage() = %v one tick before reveal, expected StageFlight", g.Stage())
	}
	g.Step(frame())
	if g.Stage() != StageResult || !g.State().GameOver {
		t.Errorf("Stage() = %v, expected StageResult", g.Stage())
	}
}

// landingConfig overlaps the Moon with the launch pad so the first tick lands.
func landingConfig() config.RocketConfig {
	cfg := testConfig()
	cfg.World.Secondary.X = 300
	cfg.World.Secondary.Y = 1500
	cfg.World.Secondary.Radius = 100
	return cfg
}

func TestLandingScoresAndPersistsAcrossReset(t *testing.T) {
	g, pub, rec := newTestGame(landingConfig())
	answerQuiz(t, g, true)

	g.Step(frame())
	if g.Simulator().Phase() != flight.Landed {
		t.Fatalf("Phase() = %v, expected landed", g.Simulator().Phase())
	}
	if g.State().Score != flight.BaseScore {
		t.Errorf("Score = %d, expected %d", g.State().Score, flight.BaseScore)
	}
	if len(rec.records) != 1 || rec.records[0].Outcome != storage.OutcomeLanded {
		t.Fatalf("records = %+v, expected one landing", rec.records)
	}
	if got := rec.records[0]; got.QuizCorrect != got.QuizTotal || got.FuelStart != 100 {
		t.Errorf("record = %+v, expected a perfect quiz and a full tank", got)
	}
	if last := pub.frames[len(pub.frames)-1]; last.Phase != flight.Landed || last.Score != flight.BaseScore {
		t.Errorf("last frame = %+v, expected landed with score %d", last, flight.BaseScore)
	}

	for g.Stage() == StageFlight {
		g.Step(frame())
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "SAFE LANDING!") || !strings.Contains(out, "Score: 100") {
		t.Errorf("result screen missing landing summary:\n%s", out)
	}

	g.Reset(testRuntime())
	if g.landings != 1 || g.sessionScore != flight.BaseScore {
		t.Errorf("landings = %d, sessionScore = %d, expected 1 and %d", g.landings, g.sessionScore, flight.BaseScore)
	}
	if g.State().Score != 0 {
		t.Errorf("Score = %d after Reset, expected 0", g.State().Score)
	}
}

func TestRecorderErrorDoesNotStopGame(t *testing.T) {
	g, _, rec := newTestGame(landingConfig())
	rec.err = errors.New("disk full")
	answerQuiz(t, g, true)

	g.Step(frame())
	if g.Simulator().Phase() != flight.Landed {
		t.Errorf("Phase() = %v, expected landed", g.Simulator().Phase())
	}
}

func TestResizeKeepsFlight(t *testing.T) {
	g, _, _ := newTestGame(testConfig())
	answerQuiz(t, g, true)
	g.Step(frame(core.ActionThrust))
	before := g.Simulator().Ticks()

	g.Resize(120, 40)
	if g.Stage() != StageFlight || g.Simulator().Ticks() != before {
		t.Errorf("Resize restarted the flight")
	}

	screen := core.NewScreen(120, 40)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Fuel:") {
		t.Error("render should show the HUD after resize")
	}
}

func TestInvalidConfigFallsBackToDefaults(t *testing.T) {
	cfg := testConfig()
	cfg.World.Primary.Radius = -1
	g, _, _ := newTestGame(cfg)

	if g.world != flight.DefaultWorld() {
		t.Errorf("world = %+v, expected the default world", g.world)
	}
}

func TestArrowFor(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '↑'},
		{math.Pi / 4, '↗'},
		{math.Pi / 2, '→'},
		{math.Pi, '↓'},
		{-math.Pi / 2, '←'},
		{2*math.Pi + 0.1, '↑'},
		{-0.1, '↑'},
	}
	for _, tt := range tests {
		if got := arrowFor(tt.heading); got != tt.want {
			t.Errorf("arrowFor(%v) = %q, expected %q", tt.heading, got, tt.want)
		}
	}
}

func TestViewportKeepsAspect(t *testing.T) {
	v := newViewport(flight.DefaultWorld(), 80, 24)

	if x, y := v.project(core.V(0, 0)); x != 0 || y != 1 {
		t.Errorf("project(origin) = (%d, %d), expected (0, 1)", x, y)
	}
	if x, y := v.project(core.V(3999, 2199)); x != 79 || y != 22 {
		t.Errorf("project(far corner) = (%d, %d), expected (79, 22)", x, y)
	}

	p := v.unproject(40, 12)
	if x, y := v.project(p); x != 40 || y != 12 {
		t.Errorf("project(unproject(40, 12)) = (%d, %d)", x, y)
	}
}

func TestRenderQuiz(t *testing.T) {
	g, _, _ := newTestGame(testConfig())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	p, _ := g.quiz.Current()
	for _, want := range []string{"MATH FUEL STATION", "Question 1/", p.String(), "Earth"} {
		if !strings.Contains(out, want) {
			t.Errorf("quiz screen missing %q", want)
		}
	}
}
