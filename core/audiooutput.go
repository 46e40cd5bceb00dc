package agent

import "github.com/liralabs/lira-core/core/audio"

// audioOutputFacade drops audio when no sink is configured and reports the
// project default encoding in that case.
type audioOutputFacade struct {
	client AudioOutput
}

func (a *audioOutputFacade) set(client AudioOutput) {
	if a != nil {
		a.client = client
	}
}

func (a *audioOutputFacade) isConfigured() bool {
	return a != nil && a.client != nil
}

func (a *audioOutputFacade) SendAudio(audio []byte) error {
	if !a.isConfigured() {
		return nil
	}

	return a.client.SendAudio(audio)
}

func (a *audioOutputFacade) Clear() {
	if a.isConfigured() {
		a.client.ClearBuffer()
	}
}

func (a *audioOutputFacade) EncodingInfo() audio.EncodingInfo {
	if !a.isConfigured() {
		return audio.GetDefaultEncodingInfo()
	}

	return a.client.EncodingInfo()
}
