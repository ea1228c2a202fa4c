package intake

import (
	"github.com/go-playground/validator/v10"

	"github.com/valeshop/access-intake/internal/model"
	"github.com/valeshop/access-intake/internal/validation"
)

// Messages shown to the requester.
const (
	MessageNameRequired       = "Nome é obrigatório"
	MessageEmailRequired      = "E-mail é obrigatório"
	MessageEmailInvalid       = "E-mail inválido"
	MessageReasonRequired     = "Descrição/Motivo é obrigatório"
	MessageDurationRequired   = "Duração é obrigatória"
	MessageDurationInvalid    = "Duração deve ser um número maior que 0"
	MessageApplicationMissing = "Selecione a aplicação"
	MessageApplicationInvalid = "Aplicação inválida"

	MessageSuccess         = "Solicitação enviada com sucesso! Você receberá uma resposta em breve."
	MessageConnectionError = "Erro de conexão. Verifique sua internet e tente novamente."
	MessageServerError     = "Erro ao enviar solicitação. Tente novamente."
)

// fieldMessage picks the message for the first rule a field failed.
func fieldMessage(fe validator.FieldError) string {
	switch Field(fe.Field()) {
	case FieldRequesterName:
		return MessageNameRequired

	case FieldRequesterEmail:
		if fe.Tag() == validation.TagSimpleEmail {
			return MessageEmailInvalid
		}
		return MessageEmailRequired

	case FieldReason:
		return MessageReasonRequired

	case FieldDurationHours:
		if fe.Tag() == validation.TagPositiveNumber {
			return MessageDurationInvalid
		}
		return MessageDurationRequired

	case FieldApplication:
		if fe.Tag() == model.TagApplication {
			return MessageApplicationInvalid
		}
		return MessageApplicationMissing

	default:
		return validation.Message(fe)
	}
}
