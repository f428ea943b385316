package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// ConfirmQuestion is the yes/no prompt shown before a participant is removed.
func ConfirmQuestion(data ConfirmData) string {
	return "Unregister " + data.Email + " from \"" + data.Activity + "\"?"
}

func ConfirmUnregister(data ConfirmData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Confirm unregister</title>
    <link rel="stylesheet" href="`)
		b.WriteString(esc(assetPath("/static/styles.css")))
		b.WriteString(`"/>
  </head>
  <body>
    <main>
      <section class="confirm-dialog" role="alertdialog" aria-labelledby="confirm-question">
        <p id="confirm-question">`)
		b.WriteString(esc(ConfirmQuestion(data)))
		b.WriteString(`</p>
        <form method="post" action="/unregister">
          <input type="hidden" name="activity" value="`)
		b.WriteString(esc(data.Activity))
		b.WriteString(`"/>
          <input type="hidden" name="email" value="`)
		b.WriteString(esc(data.Email))
		b.WriteString(`"/>
          <button type="submit" name="confirm" value="yes">Yes</button>
          <button type="submit" name="confirm" value="no" class="secondary">No</button>
        </form>
      </section>
    </main>
  </body>
</html>
`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
