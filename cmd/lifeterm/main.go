package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"lifeworld/internal/app"
	"lifeworld/internal/core"
	_ "lifeworld/internal/rules/coex"
	_ "lifeworld/internal/rules/move"
	_ "lifeworld/internal/rules/normal"
	"lifeworld/internal/ui"
	"lifeworld/internal/world"

	"github.com/ahmetb/go-cursor"
	"github.com/mgutz/ansi"
)

var groupColors = []string{"green+b", "yellow+b", "blue+b", "red+b", "magenta+b", "cyan+b"}

func main() {
	cfg := app.NewConfig()
	cfg.Width, cfg.Height = 64, 32
	cfg.Bind(flag.CommandLine)
	gens := flag.Int("gens", 0, "stop after this many generations (0 = until interrupted)")
	plain := flag.Bool("plain", false, "print one status line per generation instead of drawing the grid")
	flag.Parse()

	w, err := world.New(cfg.World())
	if err != nil {
		log.Fatalf("create world: %v", err)
	}
	size := w.Size()
	w.SeedRandom(cfg.Density, 0, 0, size.W-1, size.H-1)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !*plain {
		io.WriteString(os.Stdout, cursor.ClearEntireScreen())
	}
	w.Start(true)
	defer w.Stop()

	for *gens <= 0 || w.Generation() < *gens {
		applied, err := w.Next(ctx)
		if errors.Is(err, context.Canceled) {
			break
		}
		if err != nil {
			log.Fatalf("step: %v", err)
		}
		if !w.Running() && !applied {
			break
		}
		if !applied {
			continue
		}
		if *plain {
			st := w.Status()
			fmt.Printf("gen=%d live=%d born=%d died=%d calc=%v\n",
				st.Generation, st.Stats.Live, st.Stats.Births, st.Stats.Deaths, st.CalcTime)
			continue
		}
		draw(os.Stdout, w)
	}
	log.Printf("stopped after %d generations", w.Generation())
}

func draw(out io.Writer, w *world.World) {
	var b strings.Builder
	b.WriteString(cursor.MoveTo(1, 1))
	size := w.Size()
	reset := ansi.ColorCode("reset")
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			if w.Get(x, y, core.FieldAlive) == 0 {
				b.WriteByte(' ')
				continue
			}
			group := int(w.Get(x, y, core.FieldGroup)) % len(groupColors)
			b.WriteString(ansi.ColorCode(groupColors[group]))
			if w.Get(x, y, core.FieldType) == 1 {
				b.WriteRune('▓')
			} else {
				b.WriteRune('█')
			}
			b.WriteString(reset)
		}
		b.WriteByte('\n')
	}
	header := ansi.ColorFunc("white+b:black")
	for _, line := range ui.StatusLines(w.Status()) {
		b.WriteString(header(fmt.Sprintf("%-40s", line)))
		b.WriteByte('\n')
	}
	io.WriteString(out, b.String())
}
