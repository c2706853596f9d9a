// Command yaentities resolves and renders Telegram message entities.
//
// Usage:
//
//	yaentities -mode serve
//	echo '{"text":"hi","entities":[{"type":"bold","offset":0,"length":2}]}' | yaentities -mode resolve
//	yaentities -mode render -encoding markdown < message.json
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/YaCodeDev/GoYaTgEntities/config"
	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
	"github.com/YaCodeDev/GoYaTgEntities/yatgmessageencoding"
)

const (
	modeServe   = "serve"
	modeResolve = "resolve"
	modeRender  = "render"
)

func main() {
	mode := flag.String("mode", modeServe, "serve, resolve or render")
	encodingName := flag.String("encoding", yatgmessageencoding.HTML, "html or markdown, used by -mode render")
	flag.Parse()

	log := yalogger.NewBaseLogger(nil).NewLogger()

	cfg := config.Load(log)

	log = yalogger.NewBaseLogger(&yalogger.Config{
		Level:         cfg.LogLevel,
		FullTimestamp: true,
		Output:        os.Stderr,
	}).NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error

	switch *mode {
	case modeServe:
		err = serve(ctx, cfg, log)
	case modeResolve:
		err = resolve(os.Stdin, os.Stdout)
	case modeRender:
		err = render(os.Stdin, os.Stdout, *encodingName, cfg.RenderKinds)
	default:
		log.Errorf("Unknown mode %q", *mode)
		stop()
		os.Exit(2)
	}

	if err != nil {
		log.Errorf("yaentities %s: %v", *mode, err)
		stop()
		os.Exit(1)
	}
}
