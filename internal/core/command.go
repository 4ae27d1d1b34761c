package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom moves the client into a room and requests its history.
	CommandJoinRoom CommandKind = iota
	// CommandSendRoomMessage delivers a chat message to room participants.
	CommandSendRoomMessage
	// CommandTyping announces that a user started typing.
	CommandTyping
	// CommandStopTyping announces that a user stopped typing.
	CommandStopTyping
)

// Command represents an action requested by a client.
type Command struct {
	Kind    CommandKind
	Room    string  // CommandJoinRoom
	User    string  // CommandTyping, CommandStopTyping
	Message Message // CommandSendRoomMessage
}
