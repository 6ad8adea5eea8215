package main

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ReksiGustio/SimpleWalls/api"
	"github.com/ReksiGustio/SimpleWalls/picture"
	"github.com/ReksiGustio/SimpleWalls/session"
	"github.com/ReksiGustio/SimpleWalls/store"
	"github.com/ReksiGustio/SimpleWalls/ui"
	"github.com/ReksiGustio/SimpleWalls/ui/common"
	"github.com/ReksiGustio/SimpleWalls/util"
)

func main() {

	conf, err := util.ReadConf()
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Println("Configuration: ")
	fmt.Println(util.PrettyPrint(conf))

	st, err := store.Open(util.ResolveFilePath(conf.Conf.DatabaseFile))
	if err != nil {
		log.Fatalln(err)
	}
	defer st.Close()

	client := api.New(conf.Conf.ApiBaseUrl)
	core := session.New(st, client, time.Duration(conf.Conf.PopupSeconds)*time.Second)
	pictures := picture.NewManager(st, client)

	m := ui.NewModel(core, client, pictures, 80, 24)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// The popup timer fires outside the update loop, push a redraw in
	core.Popup().SetNotify(func() {
		p.Send(common.RedrawMsg{})
	})

	if _, err := p.Run(); err != nil {
		log.Fatalln(err)
	}

	core.Popup().Stop()
}
