package queuevalues

// Type is the matchmaking category shown to users.
type Type string

const (
	Normal Type = "NORMAL"
	SoloQ  Type = "SOLOQ"
	FlexQ  Type = "FLEXQ"
	ARAM   Type = "ARAM"
)

// Queue ids are defined upstream.
// 400 - normal draft, 420 - soloq, 430 - normal blind, 440 - flexq, 450 - aram.
var queueIdToType = map[int]Type{
	400: Normal,
	420: SoloQ,
	430: Normal,
	440: FlexQ,
	450: ARAM,
}

// Canonical queue id used when filtering by type.
var typeToQueueId = map[Type]int{
	Normal: 400,
	SoloQ:  420,
	FlexQ:  440,
	ARAM:   450,
}

// Ranked queue names as reported by league entries.
var RankedQueueValue = map[int]string{
	420: "RANKED_SOLO_5x5",
	440: "RANKED_FLEX_SR",
}

// TypeFor maps a queue id to its type, falling back to Normal.
func TypeFor(queueId int) Type {
	if queueType, ok := queueIdToType[queueId]; ok {
		return queueType
	}
	return Normal
}

// ID returns the canonical queue id of a type.
func ID(queueType Type) (int, bool) {
	id, ok := typeToQueueId[queueType]
	return id, ok
}

// IsRanked reports whether the queue id is a ranked queue.
func IsRanked(queueId int) bool {
	_, ok := RankedQueueValue[queueId]
	return ok
}
