// Package mq publishes finished verdicts to a RabbitMQ queue.
package mq

import (
	"github.com/Atharva062006/OfflineJudge/config"
	"github.com/Atharva062006/OfflineJudge/model"
	"github.com/Atharva062006/OfflineJudge/util"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type Publisher struct {
	conn  *amqp091.Connection
	ch    channel
	queue string
}

// Dial connects to the broker and declares the durable verdict queue.
func Dial(conf config.MQConfig) (*Publisher, error) {
	conn, err := amqp091.Dial(conf.URL)
	if err != nil {
		util.ErrorLog(err, "mq.Dial(): dial")
		return nil, errors.Wrap(err, "cannot connect to message queue")
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		util.ErrorLog(err, "mq.Dial(): open channel")
		return nil, errors.Wrap(err, "cannot open channel")
	}
	if _, err = ch.QueueDeclare(conf.QueueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		util.ErrorLog(err, "mq.Dial(): declare queue")
		return nil, errors.Wrapf(err, "cannot declare queue %s", conf.QueueName)
	}
	return &Publisher{conn: conn, ch: ch, queue: conf.QueueName}, nil
}

func (p *Publisher) Publish(v *model.Verdict) error {
	msg, err := util.MakePublishing(util.VerdictResponse(v), v.RunID)
	if err != nil {
		return err
	}
	if err := p.ch.Publish("", p.queue, false, false, msg); err != nil {
		util.ErrorLog(err, "Publisher.Publish(): publish")
		return errors.Wrap(err, "cannot publish verdict")
	}
	util.InfoLog("verdict published", nil, zap.String("run_id", v.RunID), zap.String("queue", p.queue))
	return nil
}

func (p *Publisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
