package notify

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// amount formats a decimal with grouping and two fraction digits, e.g. "1,234.50".
func amount(d decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	return p.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

// BudgetAlert is the mail sent when spending in a month exceeds the alert limit.
func BudgetAlert(name, email, monthLabel string, alertLimit, spent, remaining decimal.Decimal) Message {
	body := fmt.Sprintf(`Hello %s,

You have exceeded your spending alert limit for %s.

Budget Limit Alert: %s
Total Spent So Far: %s
Remaining Balance: %s

Please review your expenses to stay on track.

Regards,
Pennywise
`, name, monthLabel, amount(alertLimit), amount(spent), amount(remaining))

	return Message{
		Kind:      KindBudgetAlert,
		Recipient: email,
		Subject:   fmt.Sprintf("Spending Alert: Limit Exceeded for %s", monthLabel),
		Body:      body,
	}
}

func Welcome(name, email string) Message {
	return Message{
		Kind:      KindWelcome,
		Recipient: email,
		Subject:   "Account Created Successfully",
		Body:      fmt.Sprintf("Hello %s,\n\nYour account has been created successfully. Welcome to Pennywise!\n", name),
	}
}

// PasswordReset carries the link to the password reset form.
func PasswordReset(name, email, link string) Message {
	return Message{
		Kind:      KindPasswordReset,
		Recipient: email,
		Subject:   "Reset your password",
		Body:      fmt.Sprintf("Hello %s,\n\nUse the link below to reset your password:\n%s\n\nIf you did not request a password reset, you can ignore this message.\n", name, link),
	}
}
