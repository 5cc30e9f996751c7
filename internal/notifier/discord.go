package notifier

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/snowpeak-resort/station-api/internal/subscription"
)

// DiscordNotifier posts the scheduled report summaries to the station's
// ops channel. It satisfies subscription.Notifier.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyExpiring(entries []subscription.ExpiringEntry) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}
	if len(entries) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("⏳ **Expiring Subscriptions**\n")
	for _, entry := range entries {
		fmt.Fprintf(&b, "**#%d** ends %s — %s %s\n",
			entry.Subscription.ID,
			entry.Subscription.EndDate.Format("2006-01-02"),
			entry.Skier.FirstName,
			entry.Skier.LastName,
		)
	}

	_, err := n.session.ChannelMessageSend(n.channelID, b.String())
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}
	return nil
}

func (n *DiscordNotifier) NotifyRevenue(report subscription.RevenueReport) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	message := fmt.Sprintf("💰 **Monthly Recurring Revenue**\n**Monthly:** %.2f\n**Semestriel:** %.2f\n**Annual:** %.2f\n**Total:** %.2f",
		report.Monthly,
		report.Semestriel,
		report.Annual,
		report.Total,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}
	return nil
}
