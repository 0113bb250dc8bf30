package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Embed accent colors.
const (
	colorRed    = 0xED4245
	colorGreen  = 0x57F287
	colorYellow = 0xFEE75C
	colorOrange = 0xE67E22
	colorBlue   = 0x3498DB
)

func errorEmbed(description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: "Error", Description: description, Color: colorRed}
}

func successEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: title, Description: description, Color: colorGreen}
}

func infoEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: title, Description: description, Color: colorBlue}
}

func field(name, value string) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: true}
}

func wideField(name, value string) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: false}
}

func mention(userID string) string   { return "<@" + userID + ">" }
func chanRef(channelID int64) string { return fmt.Sprintf("<#%d>", channelID) }
func roleRef(roleID int64) string    { return fmt.Sprintf("<@&%d>", roleID) }

// dmNotice appends the standard "could not DM" note to a log embed when the
// best-effort notification did not go through.
func dmNotice(e *discordgo.MessageEmbed, delivered bool) *discordgo.MessageEmbed {
	if !delivered {
		e.Fields = append(e.Fields, wideField("Notice", "User could not be notified via DM"))
	}
	return e
}

// verifiedEmbed is the log entry for a successful verification.
func verifiedEmbed(userID, username string, birthdate time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "User Verified",
		Description: fmt.Sprintf("%s has been verified.", mention(userID)),
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			field("User ID", userID),
			field("Username", username),
			field("Birthdate", birthdate.Format("02-01-2006")),
		},
	}
}

// underageEmbed is the log entry for a rejected under-age attempt.
func underageEmbed(userID, username string, birthdate time.Time, age int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Verification Failed",
		Description: fmt.Sprintf("%s attempted to verify but is under 18.", mention(userID)),
		Color:       colorRed,
		Fields: []*discordgo.MessageEmbedField{
			field("User ID", userID),
			field("Username", username),
			field("Birthdate", birthdate.Format("02-01-2006")),
			field("Age", fmt.Sprintf("%d", age)),
		},
	}
}

// warnCountField renders the "n/3" progress toward the auto-ban threshold.
func warnCountField(count int64) *discordgo.MessageEmbedField {
	return field("Count", fmt.Sprintf("%d/3", count))
}
