package messaging

import (
	"context"
	"encoding/json"
	"log"

	eventDto "devpath.app/profileservice/internal/modules/event/dto"
	event "devpath.app/profileservice/internal/modules/event/service"
)

// Service ties the broker consumer to the event processor.
type Service struct {
	consumer  MessageConsumer
	processor event.EventProcessor
	queue     string
}

func NewService(consumer MessageConsumer, processor event.EventProcessor, queue string) *Service {
	return &Service{
		consumer:  consumer,
		processor: processor,
		queue:     queue,
	}
}

func (s *Service) Start() error {
	if err := s.consumer.Connect(); err != nil {
		return err
	}

	if err := s.consumer.Consume(s.queue, s.handle); err != nil {
		return err
	}

	log.Println("Messaging service started successfully")
	return nil
}

func (s *Service) Stop() {
	if err := s.consumer.Disconnect(); err != nil {
		log.Printf("Error stopping messaging service: %v", err)
	}
	log.Println("Messaging service stopped")
}

// handle decodes one delivery. Unparsable payloads are dropped with a log;
// the consumer acknowledges either way.
func (s *Service) handle(ctx context.Context, body []byte) {
	var msg eventDto.ProfileUpdateMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		log.Printf("Dropping unparsable message: %v", err)
		return
	}

	s.processor.Process(ctx, msg)
}
