package web

import (
	"bytes"
	"context"
	"html"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, data PageData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Page(data).Render(context.Background(), &buf))
	return buf.String()
}

func TestEncodeComponentRoundTrip(t *testing.T) {
	values := []string{
		"Chess Club",
		"Art & Design",
		"100% Fitness",
		"Team #7",
		"a+b@x.com",
		`quote"d <tag> 'single'`,
		"naïve café",
	}
	for _, value := range values {
		encoded := EncodeComponent(value)
		assert.NotContains(t, encoded, " ")
		assert.NotContains(t, encoded, "&")
		assert.NotContains(t, encoded, "#")
		assert.NotContains(t, encoded, `"`)
		decoded, err := DecodeComponent(encoded)
		require.NoError(t, err)
		assert.Equal(t, value, decoded)
	}
	assert.Equal(t, "Chess%20Club", EncodeComponent("Chess Club"))
}

func TestPageRendersActivityCard(t *testing.T) {
	body := render(t, PageData{
		Activities: ActivitiesView{
			Cards: []ActivityCard{{
				Name:        "Chess Club",
				Description: "desc",
				Schedule:    "Fri",
				SpotsLeft:   9,
				Participants: []ParticipantRow{{
					Email:           "a@x.com",
					EncodedActivity: EncodeComponent("Chess Club"),
					EncodedEmail:    EncodeComponent("a@x.com"),
				}},
			}},
			Options: []string{"Chess Club"},
		},
	})

	assert.Contains(t, body, "<h4>Chess Club</h4>")
	assert.Contains(t, body, "9 spots left")
	assert.Equal(t, 1, strings.Count(body, `class="participant-item"`))
	assert.Contains(t, body, `<span class="participant-email">a@x.com</span>`)
	assert.Contains(t, body, `href="/unregister?activity=Chess%20Club&amp;email=a%40x.com"`)
	assert.Contains(t, body, `<option value="">-- Select an activity --</option>`)
	assert.Contains(t, body, `<option value="Chess Club">Chess Club</option>`)
	assert.Contains(t, body, `<div id="message" class="hidden"></div>`)
}

func TestPageRendersEmptyRoster(t *testing.T) {
	body := render(t, PageData{
		Activities: ActivitiesView{
			Cards:   []ActivityCard{{Name: "Gym", SpotsLeft: 0}},
			Options: []string{"Gym"},
		},
	})
	assert.Contains(t, body, "<em>No participants yet</em>")
	assert.Contains(t, body, "0 spots left")
}

func TestPageRendersLoadFailure(t *testing.T) {
	body := render(t, PageData{Activities: ActivitiesView{LoadFailed: true}})
	assert.Contains(t, body, "<p>Failed to load activities. Please try again later.</p>")
	assert.NotContains(t, body, "activity-card")
	assert.Equal(t, 1, strings.Count(body, "<option"))
}

func TestPageEscapesUserContent(t *testing.T) {
	body := render(t, PageData{
		Activities: ActivitiesView{
			Cards:   []ActivityCard{{Name: "<script>alert(1)</script>", Description: `"quoted"`}},
			Options: []string{"<script>alert(1)</script>"},
		},
		Draft: DraftView{Email: `x"onfocus="y`},
	})
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, body, `value="x&#34;onfocus=&#34;y"`)
}

func TestStatusMessage(t *testing.T) {
	body := render(t, PageData{
		Status: StatusView{Text: "Activity full", Kind: "error", HideAfterMillis: 5000},
		Draft:  DraftView{Email: "a@x.com", Activity: "Chess Club"},
		Activities: ActivitiesView{
			Options: []string{"Chess Club", "Gym"},
		},
	})
	assert.Contains(t, body, `<div id="message" class="error" data-hide-after="5000">Activity full</div>`)
	assert.Contains(t, body, `value="a@x.com"`)
	assert.Contains(t, body, `<option value="Chess Club" selected>Chess Club</option>`)
	assert.Contains(t, body, `<option value="Gym">Gym</option>`)
}

func TestRemovalControlRoundTrip(t *testing.T) {
	activity := "Art & Design #1 100%"
	email := `o'neil+tag@x.com`
	body := render(t, PageData{
		Activities: ActivitiesView{
			Cards: []ActivityCard{{
				Name: activity,
				Participants: []ParticipantRow{{
					Email:           email,
					EncodedActivity: EncodeComponent(activity),
					EncodedEmail:    EncodeComponent(email),
				}},
			}},
		},
	})

	activityAttr := regexp.MustCompile(`data-activity="([^"]*)"`).FindStringSubmatch(body)
	emailAttr := regexp.MustCompile(`data-email="([^"]*)"`).FindStringSubmatch(body)
	require.Len(t, activityAttr, 2)
	require.Len(t, emailAttr, 2)

	gotActivity, err := DecodeComponent(html.UnescapeString(activityAttr[1]))
	require.NoError(t, err)
	gotEmail, err := DecodeComponent(html.UnescapeString(emailAttr[1]))
	require.NoError(t, err)
	assert.Equal(t, activity, gotActivity)
	assert.Equal(t, email, gotEmail)
}

func TestConfirmUnregister(t *testing.T) {
	var buf bytes.Buffer
	data := ConfirmData{Activity: "Chess Club", Email: "a@x.com"}
	require.NoError(t, ConfirmUnregister(data).Render(context.Background(), &buf))
	body := buf.String()

	assert.Equal(t, `Unregister a@x.com from "Chess Club"?`, ConfirmQuestion(data))
	assert.Contains(t, body, "Unregister a@x.com from &#34;Chess Club&#34;?")
	assert.Contains(t, body, `name="confirm" value="yes"`)
	assert.Contains(t, body, `name="confirm" value="no"`)
	assert.Contains(t, body, `name="activity" value="Chess Club"`)
}
