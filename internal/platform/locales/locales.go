// Package locales supplies default user-facing messages for transaction
// records when the caller does not provide one.
package locales

// MessageKind identifies the operation a default message is needed for.
type MessageKind string

const (
	KindTransfer MessageKind = "transfer"
	KindDeposit  MessageKind = "deposit"
	KindWithdraw MessageKind = "withdraw"
)

var messages = map[MessageKind]string{
	KindTransfer: "Transfer",
	KindDeposit:  "Deposit",
	KindWithdraw: "Withdraw",
}

// Default returns the localized default message for the given kind. Unknown
// kinds fall back to the transfer message.
func Default(kind MessageKind) string {
	if msg, ok := messages[kind]; ok {
		return msg
	}
	return messages[KindTransfer]
}

// Or returns message unchanged when set, otherwise the default for kind.
func Or(message string, kind MessageKind) string {
	if message != "" {
		return message
	}
	return Default(kind)
}
