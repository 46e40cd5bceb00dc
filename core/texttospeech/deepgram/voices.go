package deepgram

type deepgramVoice string

const (
	VoiceAsteria deepgramVoice = "aura-asteria-en"
	VoiceLuna    deepgramVoice = "aura-luna-en"
	VoiceStella  deepgramVoice = "aura-stella-en"
	VoiceAthena  deepgramVoice = "aura-athena-en"
	VoiceHera    deepgramVoice = "aura-hera-en"
	VoiceOrion   deepgramVoice = "aura-orion-en"
	VoiceArcas   deepgramVoice = "aura-arcas-en"
	VoicePerseus deepgramVoice = "aura-perseus-en"
	VoiceAngus   deepgramVoice = "aura-angus-en"
	VoiceOrpheus deepgramVoice = "aura-orpheus-en"
	VoiceHelios  deepgramVoice = "aura-helios-en"
	VoiceZeus    deepgramVoice = "aura-zeus-en"

	defaultVoice = VoiceAsteria
)

// GetAvailableVoices lists the Aura voices the client accepts.
func GetAvailableVoices() []deepgramVoice {
	return []deepgramVoice{
		VoiceAsteria, VoiceLuna, VoiceStella, VoiceAthena, VoiceHera,
		VoiceOrion, VoiceArcas, VoicePerseus, VoiceAngus, VoiceOrpheus,
		VoiceHelios, VoiceZeus,
	}
}

// ParseVoice maps a raw voice name to a known Aura voice.
func ParseVoice(raw string) (deepgramVoice, bool) {
	for _, voice := range GetAvailableVoices() {
		if string(voice) == raw {
			return voice, true
		}
	}
	return "", false
}
