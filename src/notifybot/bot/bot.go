package bot

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bandhall/bandhall/src/api/data"
	"github.com/bandhall/bandhall/src/api/governance"
	"github.com/bandhall/bandhall/src/api/types"
)

// lastIDKey remembers where the bot left off in the stream, so a
// restart resumes instead of replaying from the beginning. Delivery is
// at-least-once at best; a crash between send and checkpoint simply
// re-sends.
const lastIDKey = "bandhall.notifications.lastid"

type Config struct {
	Token string
	DB    *gorm.DB
	Redis *redis.Client
}

// Bot tails the notification stream and delivers each entry as a
// Discord DM to the member it names.
type Bot struct {
	session *discordgo.Session
	db      *gorm.DB
	rdb     *redis.Client
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func New(config Config) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsDirectMessages

	ctx, cancel := context.WithCancel(context.Background())
	return &Bot{
		session: dg,
		db:      config.DB,
		rdb:     config.Redis,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	b.wg.Add(1)
	go b.consume()

	log.Println("notifybot: running")
	return nil
}

func (b *Bot) Stop() {
	b.cancel()
	b.wg.Wait()
	_ = b.session.Close()
}

func (b *Bot) consume() {
	defer b.wg.Done()

	lastID, err := b.rdb.Get(b.ctx, lastIDKey).Result()
	if err != nil {
		lastID = "0"
	}

	for {
		streams, err := b.rdb.XRead(b.ctx, &redis.XReadArgs{
			Streams: []string{data.StreamNotifications, lastID},
			Count:   32,
			Block:   5 * time.Second,
		}).Result()
		if err != nil {
			if b.ctx.Err() != nil {
				return
			}
			if err != redis.Nil {
				log.Printf("notifybot: read stream: %v", err)
				time.Sleep(time.Second)
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				b.deliver(msg.Values)
				lastID = msg.ID
			}
		}
		if err := b.rdb.Set(b.ctx, lastIDKey, lastID, 0).Err(); err != nil {
			log.Printf("notifybot: checkpoint: %v", err)
		}
	}
}

func (b *Bot) deliver(values map[string]interface{}) {
	userID := str(values["user_id"])
	bandID := str(values["band_id"])
	if userID == "" || bandID == "" {
		return
	}

	var member types.BandMember
	if err := b.db.First(&member, "band_id = ? AND user_id = ?", bandID, userID).Error; err != nil {
		log.Printf("notifybot: member %s/%s: %v", bandID, userID, err)
		return
	}
	if member.Discord == "" {
		return
	}

	content := format(values)
	if content == "" {
		return
	}

	ch, err := b.session.UserChannelCreate(member.Discord)
	if err != nil {
		log.Printf("notifybot: open DM for %s: %v", member.Discord, err)
		return
	}
	if _, err := b.session.ChannelMessageSend(ch.ID, content); err != nil {
		log.Printf("notifybot: send to %s: %v", member.Discord, err)
	}
}

func format(values map[string]interface{}) string {
	title := str(values["title"])
	switch str(values["event"]) {
	case governance.EventProposalCreated:
		return fmt.Sprintf("New proposal up for vote: **%s**", title)
	case governance.EventProposalResolved:
		return fmt.Sprintf("Proposal **%s** resolved: %s", title, str(values["outcome"]))
	}
	return ""
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
