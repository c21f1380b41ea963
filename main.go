package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"ropedit/application"
	"ropedit/buffer"
	"ropedit/config"
)

var (
	logFile = flag.String("log", "app.log", "file to write the log to")
	debug   = flag.Bool("debug", false, "log every buffer edit")
)

func NewLogger(path string) (*logrus.Logger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(file)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	log.SetReportCaller(true)
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log, nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log, err := NewLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}

	cfg := config.NewConfig(log)
	if err := cfg.Init(); err != nil {
		log.Fatalf("%+v", err)
	}

	var buf *buffer.Buffer
	if file := flag.Arg(0); file == "" {
		buf = buffer.New("", log)
		log.Info("started without a file, created empty buffer")
	} else if buf, err = buffer.Open(file, log); err != nil {
		log.Fatalf("%+v", err)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if err := s.Init(); err != nil {
		log.Fatalf("%+v", err)
	}
	s.SetStyle(application.DefaultStyle)
	s.EnableMouse()
	s.EnablePaste()
	s.Clear()

	// You have to catch panics in a defer, clean up, and
	// re-raise them - otherwise your application can
	// die without leaving any diagnostic trace.
	defer func() {
		if maybePanic := recover(); maybePanic != nil {
			s.Fini()
			log.Errorf("panic: %v", maybePanic)
			panic(maybePanic)
		}
	}()

	app := application.New(s, buf, cfg, log)
	cfg.OnReload = func(config.EditorConfig) { app.Refresh() }
	if err := cfg.Watch(); err != nil {
		log.WithError(err).Warn("config changes will not be picked up")
	}
	defer cfg.Cleanup()

	runErr := app.Run()
	s.Fini()
	if runErr != nil {
		log.Errorf("%+v", runErr)
		fmt.Fprintf(os.Stderr, "%v\n", runErr)
		os.Exit(1)
	}
}
