package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const (
	loadFailedMessage   = "Failed to load activities. Please try again later."
	selectPlaceholder   = "-- Select an activity --"
	noParticipantsLabel = "No participants yet"
)

// Page renders the activity board: list, signup form and status message.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Extracurricular Activities</title>
    <link rel="stylesheet" href="`)
		b.WriteString(esc(assetPath("/static/styles.css")))
		b.WriteString(`"/>
  </head>
  <body>
    <header>
      <h1>Extracurricular Activities</h1>
    </header>
    <main>
      <section id="activities-container">
        <h3>Available Activities</h3>
        <div id="activities-list">`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := ActivitiesList(data.Activities).Render(ctx, w); err != nil {
			return err
		}

		b.Reset()
		b.WriteString(`</div>
      </section>

      <section id="signup-container">
        <h3>Sign Up for an Activity</h3>
        <form id="signup-form" method="post" action="/signup">
          <div class="form-group">
            <label for="email">Student Email:</label>
            <input type="email" id="email" name="email" required placeholder="your-email@example.com" value="`)
		b.WriteString(esc(data.Draft.Email))
		b.WriteString(`"/>
          </div>
          <div class="form-group">
            <label for="activity">Select Activity:</label>
            <select id="activity" name="activity" required>`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := ActivityOptions(data.Activities.Options, data.Draft.Activity).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</select>
          </div>
          <button type="submit">Sign Up</button>
        </form>
        `); err != nil {
			return err
		}
		if err := StatusMessage(data.Status).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `
      </section>
    </main>
    <script>
      const message = document.getElementById("message");
      const hideAfter = parseInt(message.dataset.hideAfter || "0", 10);
      if (hideAfter > 0) {
        setTimeout(() => message.classList.add("hidden"), hideAfter);
      }
    </script>
  </body>
</html>
`)
		return err
	})
}

// ActivitiesList renders one card per activity, or the load failure text.
func ActivitiesList(view ActivitiesView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if view.LoadFailed {
			_, err := io.WriteString(w, "<p>"+loadFailedMessage+"</p>")
			return err
		}
		var b strings.Builder
		for _, card := range view.Cards {
			b.WriteString(`<div class="activity-card"><h4>`)
			b.WriteString(esc(card.Name))
			b.WriteString(`</h4><p>`)
			b.WriteString(esc(card.Description))
			b.WriteString(`</p><p><strong>Schedule:</strong> `)
			b.WriteString(esc(card.Schedule))
			b.WriteString(`</p><p><strong>Availability:</strong> <span class="spots-left">`)
			b.WriteString(itoa(card.SpotsLeft))
			b.WriteString(` spots left</span></p><div class="participants-section"><strong>Participants:</strong>`)
			if len(card.Participants) == 0 {
				b.WriteString(`<p><em>` + noParticipantsLabel + `</em></p>`)
			} else {
				b.WriteString(`<ul>`)
				for _, p := range card.Participants {
					b.WriteString(`<li class="participant-item"><span class="participant-email">`)
					b.WriteString(esc(p.Email))
					b.WriteString(`</span><a class="delete-btn" href="`)
					b.WriteString(esc(p.RemoveURL()))
					b.WriteString(`" data-activity="`)
					b.WriteString(esc(p.EncodedActivity))
					b.WriteString(`" data-email="`)
					b.WriteString(esc(p.EncodedEmail))
					b.WriteString(`" title="Unregister">&times;</a></li>`)
				}
				b.WriteString(`</ul>`)
			}
			b.WriteString(`</div></div>`)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ActivityOptions renders the placeholder plus one option per activity.
func ActivityOptions(options []string, selected string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<option value="">` + selectPlaceholder + `</option>`)
		for _, name := range options {
			b.WriteString(`<option value="`)
			b.WriteString(esc(name))
			b.WriteString(`"`)
			if name == selected {
				b.WriteString(` selected`)
			}
			b.WriteString(`>`)
			b.WriteString(esc(name))
			b.WriteString(`</option>`)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func StatusMessage(status StatusView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !status.Visible() {
			_, err := io.WriteString(w, `<div id="message" class="hidden"></div>`)
			return err
		}
		var b strings.Builder
		b.WriteString(`<div id="message" class="`)
		b.WriteString(esc(status.Kind))
		b.WriteString(`" data-hide-after="`)
		b.WriteString(itoa(int(status.HideAfterMillis)))
		b.WriteString(`">`)
		b.WriteString(esc(status.Text))
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
