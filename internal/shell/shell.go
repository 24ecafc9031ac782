package shell

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/coder/quartz"
	"github.com/hmtavares/dod-trainer/internal/deck"
	"github.com/hmtavares/dod-trainer/internal/game"
	"github.com/hmtavares/dod-trainer/internal/transcript"
)

// ErrUsage marks a malformed command line. Like query errors it is
// reported and the shell prompts again.
var ErrUsage = errors.New("usage")

// ErrSave marks a transcript that could not be written. The game is
// unaffected, so the shell reports it and carries on.
var ErrSave = errors.New("save failed")

// IsRecoverable reports whether the shell should print err and carry on
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrUsage) || errors.Is(err, ErrSave) || game.IsRecoverable(err)
}

// Command represents a shell command
type Command struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	Handler     func(args []string) (bool, error) // bool indicates if the shell should continue
}

// LineReader reads command lines. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// Options configures a Shell
type Options struct {
	Out           io.Writer
	Logger        *log.Logger
	Clock         quartz.Clock
	NoColor       bool
	Prompt        string
	Seed          int64
	TranscriptDir string
	AutoSave      bool
}

// Shell is the interactive front end to a session. Player 1 is the person
// at the keyboard; the other hands are only shown on reveal.
type Shell struct {
	session  *game.Session
	out      io.Writer
	logger   *log.Logger
	clock    quartz.Clock
	styles   *Styles
	commands map[string]*Command

	promptPrefix  string
	seed          int64
	transcriptDir string
	autoSave      bool
	revealed      bool
}

// New creates a shell for a dealt session
func New(session *game.Session, opts Options) *Shell {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}

	sh := &Shell{
		session:       session,
		out:           opts.Out,
		logger:        opts.Logger.WithPrefix("shell"),
		clock:         opts.Clock,
		styles:        NewStyles(opts.Out, opts.NoColor),
		promptPrefix:  opts.Prompt,
		seed:          opts.Seed,
		transcriptDir: opts.TranscriptDir,
		autoSave:      opts.AutoSave,
	}
	sh.initCommands()
	return sh
}

// initCommands initializes the command table
func (sh *Shell) initCommands() {
	sh.commands = map[string]*Command{
		"ask": {
			Name:        "ask",
			Aliases:     []string{"a"},
			Usage:       "ask <player> <start> <end> [suit]",
			Description: "Ask how many cards a player holds from start to end (wraps past 9), optionally in one suit",
			Handler:     sh.handleAsk,
		},
		"hand": {
			Name:        "hand",
			Aliases:     []string{"h", "cards"},
			Description: "Show your hand, the exposed card, least suits and question cards",
			Handler:     sh.handleHand,
		},
		"reveal": {
			Name:        "reveal",
			Description: "Show the evidence and every player's hand",
			Handler:     sh.handleReveal,
		},
		"report": {
			Name:        "report",
			Aliases:     []string{"log", "history"},
			Description: "Show every question asked and its answer",
			Handler:     sh.handleReport,
		},
		"prompt": {
			Name:        "prompt",
			Usage:       "prompt <text>",
			Description: "Change the text shown before the question cards",
			Handler:     sh.handlePrompt,
		},
		"save": {
			Name:        "save",
			Aliases:     []string{"s"},
			Usage:       "save [path]",
			Description: "Write the game transcript",
			Handler:     sh.handleSave,
		},
		"help": {
			Name:        "help",
			Aliases:     []string{"?"},
			Description: "Show available commands",
			Handler:     sh.handleHelp,
		},
		"quit": {
			Name:        "quit",
			Aliases:     []string{"q", "exit"},
			Description: "Quit the game",
			Handler:     sh.handleQuit,
		},
	}

	for _, cmd := range sh.commandList() {
		for _, alias := range cmd.Aliases {
			sh.commands[alias] = cmd
		}
	}
}

// commandList returns each command once, sorted by name
func (sh *Shell) commandList() []*Command {
	var cmds []*Command
	for name, cmd := range sh.commands {
		if name == cmd.Name {
			cmds = append(cmds, cmd)
		}
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// Names returns every command name and alias, for completion
func (sh *Shell) Names() []string {
	names := make([]string, 0, len(sh.commands))
	for name := range sh.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Start deals the first question cards and shows the opening table
func (sh *Shell) Start() error {
	if _, err := sh.session.DrawQuestions(); err != nil {
		return err
	}

	fmt.Fprintln(sh.out, sh.styles.Title.Render("Deduce or Die"))
	fmt.Fprintln(sh.out)
	sh.showTable()
	fmt.Fprintln(sh.out, sh.styles.Info.Render("Type 'help' for commands."))
	return nil
}

// Prompt returns the current prompt: the question cards, optionally
// preceded by the user's prefix.
func (sh *Shell) Prompt() string {
	p := deck.FormatCards(sh.session.QuestionCards()) + ": "
	if sh.promptPrefix != "" {
		p = sh.promptPrefix + " " + p
	}
	return p
}

// Execute runs one command line. It returns false when the shell should
// exit.
func (sh *Shell) Execute(line string) (bool, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true, nil
	}

	name := strings.ToLower(parts[0])
	cmd, ok := sh.commands[name]
	if !ok {
		return true, fmt.Errorf("%w: unknown command %q, type 'help' for available commands", ErrUsage, parts[0])
	}

	sh.logger.Debug("Command", "line", line)
	return cmd.Handler(parts[1:])
}

// Run reads and executes commands until quit, EOF or a fatal error.
// Recoverable errors are printed and the prompt shown again.
func (sh *Shell) Run(rl LineReader) error {
	for {
		rl.SetPrompt(sh.styles.Prompt.Render(sh.Prompt()))

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(sh.out, sh.styles.Info.Render("Use 'quit' to exit"))
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		cont, err := sh.Execute(strings.TrimSpace(line))
		if err != nil {
			if !IsRecoverable(err) {
				sh.logger.Error("Session aborted", "error", err)
				return err
			}
			sh.printError(err)
			continue
		}
		if !cont {
			return nil
		}
	}
}

// Close saves the transcript when auto-save is on
func (sh *Shell) Close() error {
	if !sh.autoSave {
		return nil
	}
	path, err := sh.save("")
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Transcript saved to %s\n", path)
	return nil
}

// Revealed reports whether the hidden cards have been shown
func (sh *Shell) Revealed() bool {
	return sh.revealed
}

// Session returns the session the shell drives
func (sh *Shell) Session() *game.Session {
	return sh.session
}

func (sh *Shell) printError(err error) {
	msg := err.Error()
	msg = strings.TrimPrefix(msg, ErrUsage.Error()+": ")
	msg = strings.TrimPrefix(msg, "game: ")
	fmt.Fprintln(sh.out, sh.styles.Error.Render(msg))
}

// PrintError reports a recoverable error the way Run does
func (sh *Shell) PrintError(err error) {
	sh.printError(err)
}

func (sh *Shell) showTable() {
	if c, ok := sh.session.Exposed(); ok {
		fmt.Fprintf(sh.out, "Exposed: %s\n", sh.styles.Card(c))
	} else {
		fmt.Fprintln(sh.out, "Exposed: none")
	}
	for _, h := range sh.session.Hands() {
		fmt.Fprintf(sh.out, "%s least suit: %s\n",
			sh.styles.Player.Render(fmt.Sprintf("Player %d", h.Player())), h.Least())
	}
	fmt.Fprintf(sh.out, "Your hand: %s\n", sh.styles.Cards(sh.session.Human().Cards()))
}

// parseQuery validates the arguments to ask. Arguments past the suit are
// ignored with a warning.
func (sh *Shell) parseQuery(args []string) (game.Query, error) {
	if len(args) < 3 {
		return game.Query{}, fmt.Errorf("%w: not enough parameters, %s", ErrUsage, sh.commands["ask"].Usage)
	}
	if len(args) > 4 {
		fmt.Fprintln(sh.out, sh.styles.Warning.Render("ignoring extra parameters"))
	}

	nums := make([]int, 3)
	for i, a := range args[:3] {
		n, err := strconv.Atoi(a)
		if err != nil {
			return game.Query{}, fmt.Errorf("%w: non-numeric value for player, start or end: %q", ErrUsage, a)
		}
		nums[i] = n
	}

	filter := game.AllSuits
	if len(args) >= 4 {
		f, err := game.ParseSuitFilter(args[3])
		if err != nil {
			return game.Query{}, err
		}
		filter = f
	}

	return game.Query{
		Player: nums[0],
		Start:  deck.Rank(nums[1]),
		End:    deck.Rank(nums[2]),
		Suit:   filter,
	}, nil
}

// Command handlers

func (sh *Shell) handleAsk(args []string) (bool, error) {
	q, err := sh.parseQuery(args)
	if err != nil {
		return true, err
	}

	a, err := sh.session.Ask(q)
	if err != nil {
		return true, err
	}

	fmt.Fprintln(sh.out, sh.styles.Answer.Render(a.String()))
	return true, nil
}

func (sh *Shell) handleHand(args []string) (bool, error) {
	sh.showTable()
	fmt.Fprintf(sh.out, "Question cards: %s\n", sh.styles.Cards(sh.session.QuestionCards()))
	return true, nil
}

func (sh *Shell) handleReveal(args []string) (bool, error) {
	sh.revealed = true
	sh.logger.Info("Hands revealed")

	fmt.Fprintf(sh.out, "Evidence: %s\n", sh.styles.Cards(sh.session.Evidence()))
	if c, ok := sh.session.Exposed(); ok {
		fmt.Fprintf(sh.out, "Exposed: %s\n", sh.styles.Card(c))
	} else {
		fmt.Fprintln(sh.out, "Exposed: none")
	}
	for _, h := range sh.session.Hands() {
		fmt.Fprintf(sh.out, "%s: %s\n",
			sh.styles.Player.Render(fmt.Sprintf("Player %d", h.Player())), sh.styles.Cards(h.Cards()))
	}
	return true, nil
}

func (sh *Shell) handleReport(args []string) (bool, error) {
	questions := sh.session.Questions()
	if len(questions) == 0 {
		fmt.Fprintln(sh.out, sh.styles.Info.Render("No questions asked yet"))
		return true, nil
	}
	for _, a := range questions {
		fmt.Fprintln(sh.out, a.String())
	}
	return true, nil
}

func (sh *Shell) handlePrompt(args []string) (bool, error) {
	sh.promptPrefix = strings.Join(args, " ")
	return true, nil
}

func (sh *Shell) handleSave(args []string) (bool, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	written, err := sh.save(path)
	if err != nil {
		return true, err
	}
	fmt.Fprintln(sh.out, sh.styles.Success.Render("Transcript saved to "+written))
	return true, nil
}

func (sh *Shell) save(path string) (string, error) {
	t := transcript.Build(sh.session, transcript.Meta{
		Seed:     sh.seed,
		Revealed: sh.revealed,
		SavedAt:  sh.clock.Now(),
	})
	written, err := transcript.Save(t, sh.transcriptDir, path)
	if err != nil {
		sh.logger.Error("Transcript save failed", "error", err)
		return "", fmt.Errorf("%w: %w", ErrSave, err)
	}
	sh.logger.Info("Transcript saved", "path", written)
	return written, nil
}

func (sh *Shell) handleHelp(args []string) (bool, error) {
	fmt.Fprintln(sh.out, "Available commands:")
	for _, cmd := range sh.commandList() {
		usage := cmd.Usage
		if usage == "" {
			usage = cmd.Name
		}
		fmt.Fprintf(sh.out, "  %-34s - %s\n", usage, cmd.Description)
		if len(cmd.Aliases) > 0 {
			fmt.Fprintf(sh.out, "  %-34s   %s\n", "", sh.styles.Info.Render("aliases: "+strings.Join(cmd.Aliases, ", ")))
		}
	}
	return true, nil
}

func (sh *Shell) handleQuit(args []string) (bool, error) {
	fmt.Fprintln(sh.out, sh.styles.Info.Render("Thanks for playing!"))
	return false, nil
}

// NewReadline creates a readline instance with command completion and an
// optional history file.
func NewReadline(sh *Shell, historyFile string) (*readline.Instance, error) {
	completer := readline.NewPrefixCompleter()
	for _, name := range sh.Names() {
		completer.Children = append(completer.Children, readline.PcItem(name))
	}

	return readline.NewEx(&readline.Config{
		Prompt:          sh.styles.Prompt.Render(sh.Prompt()),
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
}
