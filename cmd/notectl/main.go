// Command notectl is a small command-line client for the go-secure-notes
// server. It authenticates with a bare account address, then drives the
// note operations over the REST API.
//
// Usage:
//
//	notectl -s http://localhost:8080 -address 0x... <command> [args]
//
// Commands:
//
//	register [hex-key]          register the caller, optionally with a key
//	set-key <hex-key>           replace the encryption key (empty arg clears it)
//	create <title> <content>    store a new note, prints its id
//	get <id>                    print one note
//	update <id> <title> <content>
//	delete <id>
//	list                        print all notes (ids, titles, timestamps)
//	count                       print the live note count
//	encrypt <content>           print framed ciphertext as hex
//	decrypt <hex-data>          print decrypted plaintext
//	address                     print the note store's own address
//	version                     print the server version
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/notekeep/go-secure-notes/internal/adapter"
)

func main() {
	serverAddr := flag.String("s", "http://localhost:8080", "server base URL")
	account := flag.String("address", "", "account address (0x-prefixed hex)")
	timeout := flag.Duration("timeout", 15*time.Second, "request timeout")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	client, err := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: *serverAddr,
		Timeout: *timeout,
	})
	if err != nil {
		fail(err)
	}

	ctx := context.Background()
	command := args[0]

	// version is the only command that works without an identity
	if command == "version" {
		version, err := client.Version(ctx)
		if err != nil {
			fail(err)
		}
		fmt.Println(version)
		return
	}

	if !common.IsHexAddress(*account) {
		fail(fmt.Errorf("invalid or missing -address %q", *account))
	}
	if _, err := client.IssueToken(ctx, common.HexToAddress(*account)); err != nil {
		fail(err)
	}

	if err := runCommand(ctx, client, command, args[1:]); err != nil {
		fail(err)
	}
}

func runCommand(ctx context.Context, client adapter.ServerAdapter, command string, args []string) error {
	switch command {
	case "register":
		var key []byte
		if len(args) > 0 {
			var err error
			if key, err = parseHexKey(args[0]); err != nil {
				return err
			}
		}
		address, err := client.Register(ctx, key)
		if err != nil {
			return err
		}
		fmt.Println(address.Hex())
		return nil

	case "set-key":
		if len(args) != 1 {
			return fmt.Errorf("set-key needs exactly one argument")
		}
		key, err := parseHexKey(args[0])
		if err != nil {
			return err
		}
		return client.UpdateEncryptionKey(ctx, key)

	case "create":
		if len(args) != 2 {
			return fmt.Errorf("create needs a title and a content argument")
		}
		id, err := client.CreateNote(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(id.Hex())
		return nil

	case "get":
		if len(args) != 1 {
			return fmt.Errorf("get needs a note id")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		note, err := client.GetNote(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("title: %s\ncontent: %s\ntimestamp: %s\n", note.Title, note.Content, note.Timestamp)
		return nil

	case "update":
		if len(args) != 3 {
			return fmt.Errorf("update needs a note id, a title and a content argument")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return client.UpdateNote(ctx, id, args[1], args[2])

	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("delete needs a note id")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return client.DeleteNote(ctx, id)

	case "list":
		list, err := client.GetNotesList(ctx)
		if err != nil {
			return err
		}
		for i := range list.IDs {
			fmt.Printf("%s\t%s\t%s\n", list.IDs[i], list.Titles[i], list.Timestamps[i])
		}
		return nil

	case "count":
		count, err := client.GetNoteCount(ctx)
		if err != nil {
			return err
		}
		fmt.Println(count.Dec())
		return nil

	case "encrypt":
		if len(args) != 1 {
			return fmt.Errorf("encrypt needs a content argument")
		}
		data, err := client.Encrypt(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(data))
		return nil

	case "decrypt":
		if len(args) != 1 {
			return fmt.Errorf("decrypt needs a hex data argument")
		}
		data, err := parseHexKey(args[0])
		if err != nil {
			return err
		}
		content, err := client.Decrypt(ctx, data)
		if err != nil {
			return err
		}
		fmt.Println(content)
		return nil

	case "address":
		address, err := client.ContractAddress(ctx)
		if err != nil {
			return err
		}
		fmt.Println(address.Hex())
		return nil

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func parseID(s string) (*uint256.Int, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return uint256.FromHex(s)
	}
	return uint256.FromDecimal(s)
}

func parseHexKey(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex value %q: %w", s, err)
	}
	return key, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "notectl:", err)
	os.Exit(1)
}
