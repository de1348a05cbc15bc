package events

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/burnoutguard/internal/cli"
	"github.com/julianstephens/burnoutguard/internal/constants"
	"github.com/julianstephens/burnoutguard/internal/models"
	"github.com/julianstephens/burnoutguard/internal/storage"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

type EventAddCmd struct {
	Summary     string `arg:"" optional:"" help:"Event summary."`
	Start       string `short:"s" help:"Start timestamp (ISO-8601)."`
	End         string `short:"e" help:"End timestamp (ISO-8601)."`
	Description string `short:"d" help:"Free-text description."`
	ID          string `help:"Explicit event id. A random one is generated when omitted."`
	Interactive bool   `short:"i" help:"Prompt for missing fields."`
}

func (c *EventAddCmd) Run(ctx *cli.Context) error {
	if c.Interactive {
		if err := c.prompt(); err != nil {
			return err
		}
	}
	if c.Summary == "" || c.Start == "" || c.End == "" {
		return errors.New("summary, --start and --end are required (or use --interactive)")
	}

	event, err := c.event()
	if err != nil {
		return err
	}
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	if err := ctx.Store.AddEvent(event); err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}

	ctx.Printf("Added event %q (%s)\n", event.Summary, event.ID)
	return nil
}

func (c *EventAddCmd) event() (models.CalendarEvent, error) {
	start, err := utils.ParseTimestamp(c.Start)
	if err != nil {
		return models.CalendarEvent{}, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := utils.ParseTimestamp(c.End)
	if err != nil {
		return models.CalendarEvent{}, fmt.Errorf("invalid --end: %w", err)
	}

	id := c.ID
	if id == "" {
		id = uuid.New().String()
	}
	event := models.CalendarEvent{
		ID:          id,
		Summary:     c.Summary,
		Start:       start,
		End:         end,
		Description: c.Description,
	}
	if err := event.Validate(); err != nil {
		return models.CalendarEvent{}, err
	}
	return event, nil
}

func validTimestamp(s string) error {
	_, err := utils.ParseTimestamp(s)
	return err
}

func (c *EventAddCmd) prompt() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Summary").Value(&c.Summary).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("summary cannot be empty")
					}
					return nil
				}),
			huh.NewInput().Title("Start").Placeholder("2025-03-10T09:00:00").Value(&c.Start).Validate(validTimestamp),
			huh.NewInput().Title("End").Placeholder("2025-03-10T10:00:00").Value(&c.End).Validate(validTimestamp),
			huh.NewText().Title("Description").Value(&c.Description),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}
	return nil
}

type EventListCmd struct {
	All bool `short:"a" help:"Include events outside the current analysis window."`
}

func (c *EventListCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	if !c.All {
		w := utils.NewWindow(ctx.Engine.Now())
		kept := events[:0]
		for _, e := range events {
			if w.Contains(e.Start) {
				kept = append(kept, e)
			}
		}
		events = kept
	}

	if len(events) == 0 {
		ctx.Println("No events found.")
		return nil
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	for _, e := range events {
		ctx.Printf("%s - %s  %s  [%s]\n",
			e.Start.Format(constants.DisplayFormat), e.End.Format(constants.TimeFormat), e.Summary, e.ID)
	}
	return nil
}

type EventDeleteCmd struct {
	ID  string `arg:"" help:"Event id."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *EventDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	event, err := ctx.Store.GetEvent(c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("event not found: %s", c.ID)
	}
	if err != nil {
		return err
	}

	if !c.Yes {
		confirm := false
		if err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q?", event.Summary)).
			Value(&confirm).
			Run(); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}
		if !confirm {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Store.DeleteEvent(c.ID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	ctx.Printf("Deleted event %q\n", event.Summary)
	return nil
}

type EventImportCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON file holding an array of events."`
}

func (c *EventImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	events, err := models.DecodeEvents(f)
	if err != nil {
		return err
	}
	for i := range events {
		if err := events[i].Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}

	if err := ctx.LoadStore(); err != nil {
		return err
	}
	n, err := ctx.Store.ImportEvents(events)
	if err != nil {
		return fmt.Errorf("failed to import events: %w", err)
	}
	ctx.Printf("Imported %d event(s) from %s\n", n, c.File)
	return nil
}
