package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"docstore/codec"
	"docstore/datastore"
	"docstore/entity"
	"docstore/internal/assemble"
	"docstore/internal/config"
	"docstore/internal/logging"
	"docstore/internal/telemetry"
	grpctransport "docstore/transport/grpc"
)

func main() {
	profilePath := flag.String("profile", "profile.yml", "client profile YAML")
	kind := flag.String("kind", "", "entity kind to look up")
	name := flag.String("name", "", "entity name to look up")
	flag.Parse()

	logging.InitFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	profile, confPath, err := config.LoadProfile(*profilePath)
	if err != nil {
		log.Fatalf("profile: %v", err)
	}
	cfg, err := config.LoadClient(confPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	telemetry.Expose(cfg.MetricsPort)

	tr, err := grpctransport.Dial(cfg.Endpoint)
	if err != nil {
		log.Fatalf("dial %s: %v", cfg.Endpoint, err)
	}
	defer tr.Close()

	var opts []datastore.Option
	if len(profile.Publishers) > 0 {
		fan, err := assemble.Publishers(profile)
		if err != nil {
			log.Fatalf("publishers: %v", err)
		}
		defer fan.Close()
		opts = append(opts, datastore.WithObserver(fan))
	}
	client := datastore.New(cfg.ProjectID, tr, codec.New(), opts...)

	if *kind == "" || *name == "" {
		log.Fatal("need -kind and -name")
	}
	key := entity.NewKey(*kind, *name, nil)
	key.Namespace = cfg.Namespace
	ent, err := client.Get(ctx, key, nil)
	if err != nil {
		log.Fatalf("get: %v", err)
	}
	if ent == nil {
		fmt.Println("not found")
		return
	}
	for pname, p := range ent.Properties {
		fmt.Printf("%s = %v\n", pname, p.Value)
	}
}
