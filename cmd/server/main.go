// Command server runs a single fixed-quiz session: it loads one question
// file, starts the lobby engine, and serves the teacher and student
// WebSocket endpoints until interrupted.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joinquiz/server/internal/config"
	"github.com/joinquiz/server/internal/httpapi"
	"github.com/joinquiz/server/internal/lobby"
	"github.com/joinquiz/server/internal/logging"
	"github.com/joinquiz/server/internal/quiz"
	"github.com/joinquiz/server/internal/teacherauth"
	"github.com/joinquiz/server/pkg/auth"
	"github.com/joinquiz/server/pkg/qrcode"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const releaseVersion = "0.1.0"

type cliFlags struct {
	quizFile    string
	bind        string
	port        int
	passphrase  string
	lockAtStart bool
	showQR      bool
	verbose     bool
}

func main() {
	flags := &cliFlags{}
	cobra.CheckErr(newCmd(flags).Execute())
}

func newCmd(flags *cliFlags) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("QUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "quiz-server",
		Short:         "Runs a single real-time quiz session.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags)
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&flags.quizFile, "quiz-file", "f", "", "path to the YAML quiz file to serve (env: QUIZ_QUIZ_FILE)")
	fs.StringVarP(&flags.bind, "bind", "b", "0.0.0.0", "address to bind to (env: QUIZ_BIND)")
	fs.IntVarP(&flags.port, "port", "p", quiz.DefaultPort, "port to listen on (env: QUIZ_PORT)")
	fs.StringVar(&flags.passphrase, "passphrase", "", "passphrase the teacher must present to control the session (env: QUIZ_PASSPHRASE)")
	fs.BoolVar(&flags.lockAtStart, "lock-at-start", true, "require the teacher to connect before players may join (env: QUIZ_LOCK_AT_START)")
	fs.BoolVar(&flags.showQR, "qr", false, "print a terminal QR code for the join URL on startup (env: QUIZ_QR)")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging (env: QUIZ_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	return cmd
}

func run(ctx context.Context, flags *cliFlags) error {
	logging.Init(flags.verbose, true)

	if flags.quizFile == "" {
		return fmt.Errorf("--quiz-file is required")
	}
	if flags.passphrase == "" {
		return fmt.Errorf("--passphrase is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.Server.Host = flags.bind
	cfg.Server.Port = flags.port
	cfg.Quiz.FilePath = flags.quizFile
	cfg.Quiz.LockAtStart = flags.lockAtStart
	cfg.Quiz.ShowQRCode = flags.showQR
	cfg.Teacher.Passphrase = flags.passphrase
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}

	questions, err := quiz.LoadFromFile(cfg.Quiz.FilePath)
	if err != nil {
		return fmt.Errorf("loading quiz file: %w", err)
	}
	log.Info().Str("quiz", questions.QuizName).Int("questions", questions.Len()).Msg("quiz loaded")

	jwtManager := auth.NewJWTManager(cfg.JWT)
	gate, err := teacherauth.NewGate(cfg.Teacher, jwtManager)
	if err != nil {
		return fmt.Errorf("building teacher gate: %w", err)
	}

	engine := lobby.New(questions)
	if !cfg.Quiz.LockAtStart {
		engine.SetLock(false)
	}
	engineCtx, cancelEngine := context.WithCancel(ctx)
	defer cancelEngine()
	go engine.Run(engineCtx)

	router := httpapi.NewRouter(engine, gate, log.Logger)
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	if cfg.Quiz.ShowQRCode {
		joinURL := fmt.Sprintf("ws://%s:%d/ws/student", flags.bind, flags.port)
		if err := qrcode.PrintToTerminal(joinURL); err != nil {
			log.Warn().Err(err).Msg("failed to render qr code")
		}
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quitSignal := make(chan os.Signal, 1)
	signal.Notify(quitSignal, syscall.SIGINT, syscall.SIGTERM)
	<-quitSignal
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	engine.HardStop()
	cancelEngine()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("server exited")
	return nil
}
