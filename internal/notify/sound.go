package notify

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"sync/atomic"
)

const fallbackSound = "default"

type playRequest struct {
	sound  string
	volume int
}

// SoundPlayer renders notification sounds on a small worker pool, decoupled
// from the caller by a bounded queue. A full queue drops the request; a
// reminder's sound is not worth blocking the scanner for.
type SoundPlayer struct {
	dir     string
	queue   chan playRequest
	workers int
	log     *slog.Logger
	dropped uint64
}

func NewSoundPlayer(dir string, workers, queueSize int, log *slog.Logger) *SoundPlayer {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &SoundPlayer{
		dir:     dir,
		queue:   make(chan playRequest, queueSize),
		workers: workers,
		log:     log,
	}
}

// Run blocks until ctx is cancelled, serving the queue with the configured
// number of workers.
func (p *SoundPlayer) Run(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case req := <-p.queue:
					p.play(req)
				}
			}
		}()
	}
	<-ctx.Done()
}

// Enqueue never blocks; an over-full queue counts a drop instead.
func (p *SoundPlayer) Enqueue(sound string, volume int) {
	select {
	case p.queue <- playRequest{sound: sound, volume: volume}:
	default:
		atomic.AddUint64(&p.dropped, 1)
		p.log.Warn("sound queue full, dropping playback", "sound", sound)
	}
}

func (p *SoundPlayer) Dropped() uint64 {
	return atomic.LoadUint64(&p.dropped)
}

func (p *SoundPlayer) play(req playRequest) {
	file, ok := p.resolve(req.sound)
	if !ok {
		p.log.Warn("no sound file for type", "sound", req.sound, "dir", p.dir)
		return
	}
	cmd := playbackCommand(file, req.volume)
	if cmd == nil {
		return
	}
	// blocks this worker until the clip finishes, never the caller
	if err := cmd.Run(); err != nil {
		p.log.Warn("sound playback failed", "file", file, "error", err)
	}
}

func (p *SoundPlayer) resolve(sound string) (string, bool) {
	for _, name := range []string{sound, fallbackSound} {
		if name == "" {
			continue
		}
		file := filepath.Join(p.dir, name+".mp3")
		if _, err := os.Stat(file); err == nil {
			return file, true
		}
	}
	return "", false
}

func playbackCommand(file string, volume int) *exec.Cmd {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	switch runtime.GOOS {
	case "linux":
		return exec.Command("ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", "-volume", strconv.Itoa(volume), file)
	case "darwin":
		return exec.Command("afplay", "-v", strconv.FormatFloat(float64(volume)/100, 'f', 2, 64), file)
	default:
		return nil
	}
}
