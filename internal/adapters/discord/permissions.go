package discord

import (
	"github.com/bwmarrin/discordgo"
)

const voicePerms = int64(discordgo.PermissionVoiceConnect | discordgo.PermissionVoiceSpeak)

// VoicePermissions: el bot puede entrar y hablar en el canal (service.VoicePermissions).
type VoicePermissions struct {
	s *discordgo.Session
}

func NewVoicePermissions(s *discordgo.Session) *VoicePermissions {
	return &VoicePermissions{s: s}
}

func (p *VoicePermissions) CanConnectAndSpeak(guildID, channelID string) (bool, error) {
	botID := p.s.State.User.ID
	perms, err := p.s.State.UserChannelPermissions(botID, channelID)
	if err != nil {
		// el state puede no tener el canal o el member todavía → REST
		perms, err = p.s.UserChannelPermissions(botID, channelID)
		if err != nil {
			return false, err
		}
	}
	return hasVoicePerms(perms), nil
}

func hasVoicePerms(perms int64) bool {
	return perms&voicePerms == voicePerms
}
