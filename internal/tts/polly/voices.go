package polly

import "polyglot-tts/internal/tts"

// Голоса AWS Polly (standard engine)
const (
	VoiceSeoyeon = "Seoyeon"
	VoiceTakumi  = "Takumi"
	VoiceMizuki  = "Mizuki"
	VoiceJoanna  = "Joanna"
	VoiceMatthew = "Matthew"
	VoiceZhiyu   = "Zhiyu"
)

var catalog = []tts.Voice{
	{ID: VoiceSeoyeon, Name: "서연 (여성)", Language: "ko-KR"},
	{ID: VoiceTakumi, Name: "Takumi (남성)", Language: "ja-JP"},
	{ID: VoiceMizuki, Name: "Mizuki (여성)", Language: "ja-JP"},
	{ID: VoiceJoanna, Name: "Joanna (여성)", Language: "en-US"},
	{ID: VoiceMatthew, Name: "Matthew (남성)", Language: "en-US"},
	{ID: VoiceZhiyu, Name: "Zhiyu (여성)", Language: "cmn-CN"},
}
