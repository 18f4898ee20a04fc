package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/shearbook/shearbook/internal/domain"
)

// Date layout quoted back to users, e.g. "Friday, July 04".
const spokenDateLayout = "Monday, January 02"

// suggestedSlots are the fixed time slots offered once a barber and date are
// known; availability is not checked against the schedule.
var suggestedSlots = []string{"9:00", "10:30", "11:00", "14:00", "15:30", "17:00"}

var greetings = []string{
	"Hello! Welcome to our barbershop. How can I help you today?",
	"Thank you for contacting our barbershop. How may I assist you?",
	"Welcome to our barbershop! What can I do for you today?",
}

const (
	helpReply = "I can help you book an appointment with our barbershop. You can say things like " +
		"'I want to book a haircut on Friday' or 'I need an appointment with John tomorrow afternoon'. " +
		"You can also ask for 'any barber' if you don't have a preference. How can I help you today?"

	initialBookingReply = "I'd be happy to help you book an appointment! To get started, please tell me " +
		"which barber you'd like or if you have a preferred date. You can also say 'any barber' if you " +
		"don't have a preference."

	askNameReply = "What is your name for the appointment? Please just type your name."

	needDateClarification = "I didn't catch a specific date from your message. Please tell me when you'd " +
		"like your appointment. You can say 'today', 'tomorrow', a specific date, or a day of the week like 'Friday'."

	needTimeClarification = "I need a specific time for your appointment. You can say a time like '3pm', " +
		"'15:00', or just 'morning', 'afternoon', or 'evening'."

	needNameClarification = "I just need your name for the appointment. Please type your name."

	defaultReply = "How can I help you with booking an appointment today? You can say something like " +
		"'I'd like to book a haircut with John on Friday' or 'I need a haircut tomorrow afternoon'."

	changeReply = "I understand you want to make changes. Which part would you like to change? " +
		"The date, time, barber, or service?"

	unclearConfirmationReply = "I didn't understand your response. Please say 'yes' to confirm the " +
		"booking or 'no' to make changes."
)

func askDateReply(now time.Time) string {
	nextWeek := now.AddDate(0, 0, 7).Format(spokenDateLayout)
	return fmt.Sprintf("What day would you like to book your appointment? You can say 'today', "+
		"'tomorrow', or a specific date like '%s'.", nextWeek)
}

func askBarberReply(barbers []domain.Barber) string {
	names := barberNames(barbers)

	if len(names) <= 3 {
		return fmt.Sprintf("Which barber would you prefer? We have %s, or you can say 'any barber' "+
			"if you don't have a preference.", strings.Join(names, ", "))
	}

	examples := strings.Join(names[:3], ", ")
	return fmt.Sprintf("Which barber would you prefer? We have %d barbers including %s. "+
		"You can also say 'any barber' if you don't have a preference.", len(names), examples)
}

func needBarberClarification(barbers []domain.Barber) string {
	names := make([]string, 0, 3)
	for _, barber := range barbers {
		names = append(names, barber.Name)
		if len(names) == 3 {
			break
		}
	}

	return fmt.Sprintf("I need to know which barber you'd like. Please choose from our barbers like %s.",
		strings.Join(names, ", "))
}

func suggestTimesReply(barberName, date string) string {
	return fmt.Sprintf("Great! %s is available on %s at: %s. Please select a time or say 'morning', "+
		"'afternoon' or 'evening'.", barberName, spokenDate(date), strings.Join(suggestedSlots, ", "))
}

func confirmationReply(facts Facts) string {
	serviceName := facts.ServiceName
	if serviceName == "" {
		serviceName = "haircut"
	}

	barberDisplay := facts.BarberName
	if facts.AnyBarber {
		barberDisplay = AnyBarberName
	}

	return fmt.Sprintf("Please confirm your appointment details:\n"+
		"• Name: %s\n"+
		"• Date: %s\n"+
		"• Time: %s\n"+
		"• Barber: %s\n"+
		"• Service: %s\n\n"+
		"Is this correct? Please reply with 'yes' to confirm or 'no' to make changes.",
		facts.ClientName, spokenDate(facts.Date), facts.Time, barberDisplay, serviceName)
}

func bookingCreatedReply(clientName string) string {
	firstName := clientName
	if fields := strings.Fields(clientName); len(fields) > 0 {
		firstName = fields[0]
	}

	return fmt.Sprintf("Great! Your appointment has been confirmed, %s. You will receive a "+
		"confirmation email shortly. Is there anything else I can help you with?", firstName)
}

func bookingFailedReply(shopPhone string) string {
	return fmt.Sprintf("I'm sorry, there was an issue creating your booking. Please try again or "+
		"contact our shop directly at %s.", shopPhone)
}

func missingInfoReply(facts Facts) string {
	var missing string
	switch {
	case !facts.BarberResolved():
		missing = "which barber you'd prefer (or say 'any barber' if you don't have a preference)"
	case facts.Date == "":
		missing = "which day you'd like to book"
	case facts.Time == "":
		missing = "what time works for you"
	default:
		missing = "your name"
	}

	return fmt.Sprintf("To continue with your booking, I need %s. Could you please provide this information?", missing)
}

// spokenDate renders an ISO date as a human-readable one, falling back to
// the raw value when it does not parse.
func spokenDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format(spokenDateLayout)
}
