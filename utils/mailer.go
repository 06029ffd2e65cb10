package utils

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

// InitSES configures the SES client. Email is optional: when AWS_REGION
// or SES_EMAIL is unset the mailer stays disabled and sends are no-ops.
func InitSES() {
	if os.Getenv("AWS_REGION") == "" || os.Getenv("SES_EMAIL") == "" {
		log.Println("SES mailer disabled: AWS_REGION or SES_EMAIL not set")
		return
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Printf("AWS config load failed, mailer disabled: %v", err)
		return
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	if sesClient == nil {
		return nil
	}
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// SendSuggestionDecisionEmail notifies a submitter that an admin has
// approved or rejected their suggestion.
func SendSuggestionDecisionEmail(to string, name string, status string) error {
	subject := fmt.Sprintf("Your suggestion %q was %s", name, status)
	body := fmt.Sprintf(
		"Thanks for contributing to the Pittsburgh Food Access Map.\n\nYour suggested location %q has been %s by our moderators.",
		name, status)
	return sendEmail(to, subject, body)
}
