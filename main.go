package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/holdspeak/holdspeak/audiocapture"
	"github.com/holdspeak/holdspeak/clipboard"
	"github.com/holdspeak/holdspeak/config"
	"github.com/holdspeak/holdspeak/history"
	"github.com/holdspeak/holdspeak/hotkey"
	"github.com/holdspeak/holdspeak/notify"
	"github.com/holdspeak/holdspeak/session"
	"github.com/holdspeak/holdspeak/status"
	"github.com/holdspeak/holdspeak/stt"
	"github.com/holdspeak/holdspeak/vocab"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Tray labels per status, matching the indicator the app has always shown.
var trayLabels = map[status.State]string{
	status.Idle:         "\U0001F99C", // 🦜
	status.Listening:    "\U0001F534", // 🔴
	status.Transcribing: "\U0001F504", // 🔄
	status.Error:        "⚠️",
}

// traySink renders session status on the system tray label.
type traySink struct {
	tray *application.SystemTray
}

func (t *traySink) SetStatus(s status.State) {
	label, ok := trayLabels[s]
	if !ok {
		label = trayLabels[status.Idle]
	}
	t.tray.SetLabel(label)
}

func main() {
	slog.Info("starting app", "version", version, "commit", commit, "date", date)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		cfg = config.Default()
	}

	combo, err := hotkey.ParseCombo(cfg.Hotkey)
	if err != nil {
		slog.Warn("invalid hotkey, using default", "hotkey", cfg.Hotkey, "error", err)
		combo, _ = hotkey.ParseCombo(config.Default().Hotkey)
	}

	rewriter, err := vocab.Compile(cfg.Vocabulary)
	if err != nil {
		slog.Warn("compile vocabulary, ignoring", "error", err)
		rewriter = nil
	}

	var store *history.Store
	if cfg.History {
		dataDir, derr := config.DataDir()
		if derr == nil {
			store, derr = history.Open(filepath.Join(dataDir, "history"))
		}
		if derr != nil {
			slog.Warn("open history store", "error", derr)
			store = nil
		}
	}

	transcriber := stt.New(stt.Config{
		APIKey:   cfg.ResolveAPIKey(),
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
		Language: cfg.Language,
	})

	capture := audiocapture.New(audiocapture.NewPortAudioDevice(), audiocapture.Config{})

	coordinator := clipboard.NewCoordinator(clipboard.NewSystemDevice(), clipboard.Config{
		PrimeDelay:  millis(cfg.PastePrimeDelayMS),
		SettleDelay: millis(cfg.PasteSettleDelayMS),
	})

	app := application.New(application.Options{
		Name:        "Holdspeak",
		Description: "Push-to-talk dictation",
		Mac: application.MacOptions{
			ApplicationShouldTerminateAfterLastWindowClosed: false,
		},
	})

	systemTray := app.SystemTray.New()
	systemTray.SetLabel(trayLabels[status.Idle])
	sink := &traySink{tray: systemTray}

	machine := session.NewMachine(session.Deps{
		Recorder:     capture,
		Transcriber:  transcriber,
		Paster:       coordinator,
		Sink:         sink,
		Rewrite:      rewriteFunc(rewriter),
		OnTranscript: archiveFunc(store),
		Notify:       notifyFunc(cfg.Notifications),
	})

	matcher := hotkey.NewMatcher(combo, machine.HandleHold)
	listener := hotkey.NewListener(matcher)

	ctx, cancel := context.WithCancel(context.Background())
	go machine.Run(ctx)

	info := status.Info{
		Microphone: audiocapture.DefaultInputName(),
		Hotkey:     combo.String(),
		Model:      transcriber.Model(),
	}
	systemTray.SetMenu(buildTrayMenu(app, info, store, func() {
		cancel()
		listener.Stop()
		if store != nil {
			if cerr := store.Close(); cerr != nil {
				slog.Error("close history store", "error", cerr)
			}
		}
		app.Quit()
	}))

	if err := listener.Start(); err != nil {
		slog.Error("start keyboard hook", "error", err)
	} else if cfg.Notifications {
		notify.Notify("", fmt.Sprintf("Ready. Hold %s to dictate.", combo))
	}

	if err := app.Run(); err != nil {
		slog.Error("run app", "error", err)
	}
}

func buildTrayMenu(app *application.App, info status.Info, store *history.Store, quit func()) *application.Menu {
	menu := app.NewMenu()
	menu.Add("Mic: " + info.Microphone).SetEnabled(false)
	menu.Add("Hotkey: " + info.Hotkey).SetEnabled(false)
	menu.Add("Model: " + info.Model).SetEnabled(false)
	menu.AddSeparator()

	if store != nil {
		recentMenu := menu.AddSubmenu("Recent")
		entries, err := store.Recent(5)
		if err != nil {
			slog.Warn("read recent transcripts", "error", err)
		}
		if len(entries) == 0 {
			recentMenu.Add("(none)").SetEnabled(false)
		}
		for _, e := range entries {
			recentMenu.Add(truncate(e.Text, 48)).SetEnabled(false)
		}
		menu.AddSeparator()
	}

	menu.Add("Quit").
		SetAccelerator("CmdOrCtrl+Q").
		OnClick(func(ctx *application.Context) {
			quit()
		})
	return menu
}

func rewriteFunc(r *vocab.Rewriter) func(string) string {
	if r == nil || r.Len() == 0 {
		return nil
	}
	return r.Apply
}

func archiveFunc(store *history.Store) func(session.Transcript) {
	if store == nil {
		return nil
	}
	return func(t session.Transcript) {
		err := store.Append(history.Entry{
			Text:    t.Text,
			Audio:   t.Audio,
			Latency: t.Latency,
		})
		if err != nil {
			slog.Warn("append history", "error", err)
		}
	}
}

func notifyFunc(enabled bool) func(title, body string) {
	if !enabled {
		return nil
	}
	return notify.Notify
}

func millis(ms int) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
