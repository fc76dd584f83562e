// Package download provides the download orchestration logic: submitting a
// video URL to the conversion service and materialising the result locally.
//
// # Orchestrator
//
// The Orchestrator runs one submission at a time through a small state machine:
//
//	Idle → Validating → Submitting → AwaitingResult → Finalizing → Idle
//	                  ↘ (any failure) → Failed → Idle
//
//  1. Validate the URL against the accepted-source pattern and the quality token
//  2. Disable the trigger, show initial progress, POST {url, quality}
//  3. Simulate progress until the service answers
//  4. Save the result: a JSON link is fetched, a binary body is moved into place
//  5. Run after-save hooks (ID3 tagging of audio downloads)
//  6. Re-enable the trigger, show completion, reset the display after a delay
//
// # Basic Usage
//
//	orch, err := download.NewOrchestrator(settings, download.Collaborators{
//	    Poster:    client,
//	    Saver:     ioutils.NewFileSaver(client, settings.DownloadsPath),
//	    TempStore: ioutils.NewTempDir(settings.DownloadsPath),
//	    Status:    statusLine,
//	    Progress:  progressBar,
//	    Trigger:   button,
//	}, download.Options{})
//
//	saved, err := orch.Submit(ctx, "https://youtu.be/abc", "audio")
//
// # Response Modes
//
// The service either returns JSON {"download_url", "filename", "title"} for a
// file it already staged, or streams the file itself. Callers never need to
// know which mode the service uses.
//
// # Errors
//
// Every failure is an *Error with a Kind (validation, network, server,
// contract, fetch). Errors never leave the orchestrator in a busy state; the
// trigger is re-enabled and the progress indicator hidden on every exit path.
//
// # Progress Simulation
//
// ProgressSimulator nudges the progress bar while the service works. It is
// owned by a single submission and always stopped, and waited for, before the
// orchestrator touches the display again.
package download
