package services

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"

	"aynamodaapi/models"

	"github.com/getsentry/sentry-go"
)

// GenericConfidenceNote is the never-fail fallback: whatever goes wrong
// internally, the user still gets an encouraging sentence.
const GenericConfidenceNote = "You've got this! Today's outfit is ready to help you shine."

// screen-reader safe character set for plain notes
var noteSanitizeRegex = regexp.MustCompile(`[^\w\s.,!?'-]`)

var noteTaglines = []string{
	"styled just for you",
	"your mirror moment awaits",
	"confidence looks good on you",
	"today is yours",
	"wear it like you mean it",
}

type noteSentiment int

const (
	sentimentDefault noteSentiment = iota
	sentimentLovedBefore
	sentimentRediscovery
)

var sentimentOpeners = map[models.NoteStyle]map[noteSentiment][]string{
	models.NoteStyleEncouraging: {
		sentimentDefault: {
			"You're ready for today, and this outfit proves it.",
			"This combination was made for a confident day.",
		},
		sentimentLovedBefore: {
			"You loved this look before, and it loved you right back.",
			"This outfit has a winning history with you.",
		},
		sentimentRediscovery: {
			"Time to rediscover a piece that's been waiting for its moment.",
			"A neglected favorite is ready for its comeback today.",
		},
	},
	models.NoteStyleWitty: {
		sentimentDefault: {
			"Alert the paparazzi, this outfit is a whole mood.",
			"Some outfits try hard. This one just wins.",
		},
		sentimentLovedBefore: {
			"Back by popular demand, the outfit that earned its own fan club.",
			"Reunion tour! This look sold out last time.",
		},
		sentimentRediscovery: {
			"Your closet called, it wants this forgotten gem back on stage.",
			"Plot twist, the piece you forgot is today's main character.",
		},
	},
	models.NoteStylePoetic: {
		sentimentDefault: {
			"Today drapes itself around you in quiet certainty.",
			"An ensemble composed like a morning song.",
		},
		sentimentLovedBefore: {
			"A familiar harmony returns, worn smooth by fond memory.",
			"Threads that once carried joy come back to carry you.",
		},
		sentimentRediscovery: {
			"A sleeping piece awakens, patient as a pressed flower.",
			"What waited in shadow steps into your light today.",
		},
	},
}

// HashSeed maps a seed string to a stable non-negative index source.
// Intentionally deterministic so the same outfit always yields the same
// note; true variety belongs at the outermost caller, not here.
func HashSeed(seed string) int {
	h := fnv.New32a()
	h.Write([]byte(seed))
	return int(h.Sum32())
}

func pickTemplate(options []string, seed string) string {
	if len(options) == 0 {
		return GenericConfidenceNote
	}
	return options[HashSeed(seed)%len(options)]
}

// NoteOptions controls tone and formatting of a confidence note.
type NoteOptions struct {
	Style models.NoteStyle
	// styled notes may carry a flourish; plain notes stay screen-reader safe
	Styled bool
	// top preferred style tag, acknowledged when available
	PreferredStyle string
	Weather        *models.WeatherContext
}

// GenerateConfidenceNote composes a personalized note for the outfit. It is
// deterministic for a fixed outfit and options, always returns a non-empty
// string, and never panics outward.
func GenerateConfidenceNote(rec models.OutfitRecommendation, opts NoteOptions) (note string) {
	defer func() {
		if r := recover(); r != nil {
			sentry.CaptureException(fmt.Errorf("confidence note generation panic: %v", r))
			note = GenericConfidenceNote
		}
	}()

	style := opts.Style
	if style == "" {
		style = models.NoteStyleEncouraging
	}

	if len(rec.Items) == 0 {
		return GenericConfidenceNote
	}

	seed := ItemSetKey(itemIDs(rec.Items)) + ":" + string(style)

	sentiment := sentimentDefault
	highConfidence := false
	for _, item := range rec.Items {
		if item.AverageRating >= 4.5 || item.ComplimentsReceived > 0 {
			sentiment = sentimentLovedBefore
			highConfidence = true
			break
		}
	}
	if sentiment == sentimentDefault {
		for _, item := range rec.Items {
			if item.LastWorn == nil || rec.CreatedAt.Sub(*item.LastWorn) > neglectWindow {
				sentiment = sentimentRediscovery
				break
			}
		}
	}

	openers := sentimentOpeners[style][sentiment]
	var parts []string
	parts = append(parts, pickTemplate(openers, seed))

	if style == models.NoteStylePoetic {
		if colors := MergedColors(rec.Items); len(colors) > 0 {
			parts = append(parts, fmt.Sprintf("A palette of %s carries the day.", strings.Join(colors, " and ")))
		}
	}

	if opts.Weather != nil {
		switch opts.Weather.Condition {
		case models.ConditionRainy:
			parts = append(parts, "Even the rain can't dim your shine.")
		case models.ConditionSunny:
			parts = append(parts, "Perfect for a day in the sun.")
		}
	}

	if opts.PreferredStyle != "" {
		parts = append(parts, fmt.Sprintf("Your signature %s touch ties it all together.", opts.PreferredStyle))
	}

	// poetic notes stay understated; extra enthusiasm clashes with the tone
	if highConfidence && style != models.NoteStylePoetic {
		parts = append(parts, "Expect compliments!")
	}

	note = strings.Join(parts, " ")
	note = noteSanitizeRegex.ReplaceAllString(note, "")
	note = strings.Join(strings.Fields(note), " ")
	if note == "" {
		return GenericConfidenceNote
	}

	tagline := noteTaglines[HashSeed(seed)%len(noteTaglines)]
	if opts.Styled {
		note = note + " ✨ " + tagline + " ✨"
	} else {
		note = note + " Remember, " + tagline + "."
	}
	return note
}
