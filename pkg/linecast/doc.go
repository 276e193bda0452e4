// Package linecast sends text files over UDP, one line per datagram.
//
// A Linecast instance owns a single outbound IPv4 UDP socket and at most one
// active transmission session. Each session loads a file under Config.Root,
// sends every line as one datagram and pauses for the requested interval
// after each line. Starting a new session cancels the running one.
//
// # Basic Usage
//
//	lc, err := linecast.New(linecast.Config{Root: "/srv/lines"},
//	    linecast.WithProgressWriter(os.Stdout),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := lc.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer lc.Stop()
//
//	s, err := lc.Send(linecast.Request{
//	    Address:  "127.0.0.1",
//	    Port:     12345,
//	    Interval: 250 * time.Millisecond,
//	    File:     "greetings.txt",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	status, _ := s.Wait(ctx)
//
// # Errors
//
// Send validates the request and loads the file before anything is sent, so
// [ErrInvalidDestination], [ErrInvalidInterval], [ErrNotFound] and [ErrDecode]
// are returned directly. A socket failure during a session ([ErrSend]) ends
// that session in [SessionFailed] and is reported in its status.
//
// # Event Handling
//
// Implement [EventHandler] (embed [BaseEventHandler] for defaults) and pass it
// via [WithEventHandler]. Events are called synchronously from the send loop;
// handlers must return quickly. Status, Session and Cancel are safe to call
// from a handler; Send and Resend are not.
//
// # Plugins
//
// Plugins re-trigger transmission through [Host.Resend]:
//
//	import "github.com/bft-labs/linecast/plugins/filewatcher"
//	import "github.com/bft-labs/linecast/plugins/schedule"
//
//	lc, err := linecast.New(cfg,
//	    filewatcher.WithFileWatcher(filewatcher.DefaultConfig()),
//	    schedule.WithSchedule(schedule.Config{Spec: "*/5 * * * *"}),
//	)
//
// # Lifecycle States
//
// An instance moves through [StateStopped], [StateRunning], [StateStopping]
// and [StateClosed]. It cannot be restarted after Stop.
package linecast
