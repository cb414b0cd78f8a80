package counterflow

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/counterflow/internal/config"
	"github.com/vovakirdan/counterflow/internal/core"
	"github.com/vovakirdan/counterflow/internal/storage"
)

// PlayerStore is the player persistence the game reads and writes.
type PlayerStore interface {
	CreatePlayer(name string) (storage.Player, error)
	Players() ([]storage.Player, error)
	Leaderboard(limit int) ([]storage.Player, error)
	UpdateScoreIfHigher(id string, score int) (bool, error)
	Rank(id string) (int, error)
}

// RunRecorder receives every finished run.
type RunRecorder interface {
	RecordRun(run storage.Run) error
}

var (
	_ PlayerStore = (*storage.PlayerStore)(nil)
	_ RunRecorder = (*storage.History)(nil)
)

const (
	leaderboardSize = 10
	noticeDuration  = 2 * time.Second
)

// Options wires the game to its collaborators. All fields are optional.
type Options struct {
	Store   PlayerStore // Defaults to an in-memory store
	History RunRecorder
	Logger  *log.Logger
}

// Game is the Counter Flow state machine. It is not safe for concurrent use.
type Game struct {
	cfg     config.Config
	field   Field
	trigger Trigger
	store   PlayerStore
	history RunRecorder
	logger  *log.Logger

	rng      *rand.Rand
	placer   *Placer
	tickRate int

	mode     Mode
	data     GameData
	selected int // Focused button or picker row

	player      storage.Player
	saved       bool // player exists in the store
	rank        int  // 0 when unknown
	preset      config.PresetConfig
	progression Progression

	nameBuf     []rune
	pickerRows  []storage.Player
	boardRows   []storage.Player
	notice      string
	noticeLeft  time.Duration
	welcomeLeft time.Duration
	flashLeft   time.Duration
}

// New creates a game at the main menu. cfg should already be validated.
func New(cfg config.Config, opts Options) *Game {
	g := &Game{
		cfg:     cfg,
		field:   NewField(cfg),
		trigger: Trigger{Quota: cfg.Progression.Quota, GuardModulus: cfg.Progression.GuardModulus},
		store:   opts.Store,
		history: opts.History,
		logger:  opts.Logger,
	}
	if g.store == nil {
		g.store = newMemoryStore(cfg.NameMax)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "counterflow"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Counter Flow"
}

// Reset reseeds the game and returns it to the main menu with no player.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.placer = NewPlacer(g.field, g.rng, g.logger)

	g.mode = ModeMenu
	g.selected = 0
	g.player = storage.Player{}
	g.saved = false
	g.rank = 0
	g.preset = config.PresetConfig{}
	g.progression = nil
	g.nameBuf = nil
	g.pickerRows = nil
	g.boardRows = nil
	g.notice = ""
	g.noticeLeft = 0
	g.welcomeLeft = 0
	g.flashLeft = 0
	g.data = newGameData(g.cfg, g.field, g.placer)
}

// Mode returns the current state.
func (g *Game) Mode() Mode {
	return g.mode
}

// Data returns the current run state. The caller must not modify it.
func (g *Game) Data() *GameData {
	return &g.data
}

// Player returns the active player and whether one is selected.
func (g *Game) Player() (storage.Player, bool) {
	return g.player, g.player.UID != ""
}

// Step advances the game by one frame of input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.mode == ModeTerminated {
		return core.StepResult{State: g.State()}
	}

	dt := in.Elapsed
	if dt <= 0 {
		dt = time.Second / time.Duration(g.tickRate)
	}
	g.tickTimers(dt)

	quit := false
	for _, ev := range in.Events {
		if ev.Kind == core.EventQuit {
			quit = true
			continue
		}
		g.handle(ev)
	}

	// Nothing moves while paused.
	if g.mode.scrolls() {
		g.data.scrollRoad(g.cfg.Road.ScrollSpeed, g.field.Screen.H)
		scrollScenery(g.data.Scenery, g.field.Screen.H, g.placer)
	}
	if g.mode == ModePlaying {
		g.simulate(in, dt)
	}
	if g.mode == ModeWelcome && g.welcomeLeft <= 0 {
		g.enterDifficulty()
	}

	if quit {
		g.logger.Info("quit requested", "mode", g.mode)
		g.mode = ModeTerminated
	}
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:      g.data.Score,
		Level:      g.data.Level,
		Playing:    g.mode == ModePlaying,
		Paused:     g.mode == ModePaused,
		GameOver:   g.mode == ModeGameOver,
		Terminated: g.mode == ModeTerminated,
	}
}

func (g *Game) tickTimers(dt time.Duration) {
	g.welcomeLeft -= dt
	g.flashLeft = max(g.flashLeft-dt, 0)
	if g.noticeLeft > 0 {
		g.noticeLeft -= dt
		if g.noticeLeft <= 0 {
			g.notice = ""
		}
	}
}

func (g *Game) setNotice(msg string) {
	g.notice = msg
	g.noticeLeft = noticeDuration
}

// simulate runs one tick of play: steering, traffic, collision, progression.
func (g *Game) simulate(in core.InputFrame, dt time.Duration) {
	d := &g.data
	d.Ticks++
	d.Elapsed += dt

	lo, hi := g.field.RoadRange(d.Player.W)
	d.Player = steer(d.Player, in.Has(core.KeyLeft), in.Has(core.KeyRight), g.cfg.Player.Speed, lo, hi)

	d.Score += advanceEnemies(d.Enemies, g.field.Screen.H, g.placer, d.Profile)

	px, _ := d.Player.Center()
	elo, ehi := g.field.RoadRange(g.cfg.Enemies.Width)
	for i := range d.Enemies {
		if d.Enemies[i].Kind == KindPursuit {
			pursue(&d.Enemies[i], px, g.cfg.Progression.PursuitStep, elo, ehi)
			followLane(&d.Enemies[i], g.field, d.Profile)
		}
	}

	if i := collision(d.Player, d.Enemies); i >= 0 {
		g.logger.Debug("collision", "kind", d.Enemies[i].Kind, "lane", d.Enemies[i].Lane, "score", d.Score)
		g.endRun(false)
		return
	}

	if g.trigger.Fire(d) {
		if d.Profile.Terminal {
			g.endRun(true)
			return
		}
		d.Level++
		g.applyLevel()
		g.logger.Info("level up", "level", d.Level+1, "score", d.Score)
	}
}

// applyLevel loads the profile for the current level and respawns traffic.
func (g *Game) applyLevel() {
	g.data.Profile = g.progression.Profile(g.data.Level)
	g.data.Enemies = spawnTraffic(g.cfg, g.data.Profile, g.placer)
}

// startRun begins a fresh run with the given preset.
func (g *Game) startRun(preset config.PresetConfig) {
	prog, err := ProgressionFor(g.cfg, preset)
	if err != nil {
		g.logger.Error("cannot start run", "preset", preset.Name, "err", err)
		g.setNotice("That difficulty is not available")
		return
	}

	g.preset = preset
	g.progression = prog
	before := g.placer.Stats()
	g.data = newGameData(g.cfg, g.field, g.placer)
	g.applyLevel()
	g.flashLeft = 0
	g.mode = ModePlaying
	g.refreshRank()
	g.logger.Info("run started", "player", g.player.Username, "preset", preset.Name, "strategy", prog.Strategy())
	if st := g.placer.Stats(); st.Exhausted > before.Exhausted {
		g.logger.Warn("scenery placement ran out of attempts",
			"placed", st.Placed-before.Placed, "exhausted", st.Exhausted-before.Exhausted)
	}
}

// endRun moves to game over, saving the score and recording the run.
func (g *Game) endRun(won bool) {
	d := &g.data
	d.Won = won
	g.mode = ModeGameOver
	g.selected = 0
	if !won {
		g.flashLeft = g.cfg.Timing.CrashFlash()
	}

	g.saveScore()
	g.recordRun()
	g.refreshRank()
	g.logger.Info("run ended", "player", g.player.Username, "score", d.Score, "level", d.Level+1, "won", won)
}

func (g *Game) saveScore() {
	score := g.data.Score
	if score <= g.player.Score {
		return
	}
	if g.saved {
		if _, err := g.store.UpdateScoreIfHigher(g.player.UID, score); err != nil {
			g.logger.Warn("score not saved", "uid", g.player.UID, "score", score, "err", err)
		}
	}
	g.player.Score = score
}

func (g *Game) recordRun() {
	if g.history == nil || g.progression == nil {
		return
	}
	run := storage.Run{
		PlayerID:   g.player.UID,
		PlayerName: g.player.Username,
		Score:      g.data.Score,
		Level:      g.data.Level,
		Preset:     g.preset.Name,
		Strategy:   string(g.progression.Strategy()),
		Won:        g.data.Won,
		Duration:   g.data.Elapsed,
	}
	if err := g.history.RecordRun(run); err != nil {
		g.logger.Warn("run not recorded", "err", err)
	}
}

func (g *Game) refreshRank() {
	g.rank = 0
	if !g.saved {
		return
	}
	r, err := g.store.Rank(g.player.UID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.logger.Debug("player not ranked", "uid", g.player.UID)
		} else {
			g.logger.Warn("rank lookup failed", "err", err)
		}
		return
	}
	g.rank = r
}

// choosePlayer makes p the active player and shows the welcome banner.
func (g *Game) choosePlayer(p storage.Player, saved bool) {
	g.player = p
	g.saved = saved
	g.data = newGameData(g.cfg, g.field, g.placer)
	g.mode = ModeWelcome
	g.welcomeLeft = g.cfg.Timing.Welcome()
	g.logger.Info("player selected", "uid", p.UID, "name", p.Username, "saved", saved)
}

// createPlayer stores a new player, falling back to an unsaved one when
// the store fails.
func (g *Game) createPlayer(name string) {
	p, err := g.store.CreatePlayer(name)
	if errors.Is(err, storage.ErrInvalidName) {
		g.setNotice("Invalid name")
		return
	}
	if err != nil {
		g.logger.Warn("player not saved", "name", name, "err", err)
		g.setNotice("Could not save player, progress will not be kept")
		g.choosePlayer(storage.Player{UID: uuid.NewString(), Username: name}, false)
		return
	}
	g.choosePlayer(p, true)
}
